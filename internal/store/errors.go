package store

import "errors"

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrWriteFailed wraps any store error raised by a write.
	ErrWriteFailed = errors.New("store write failed")
	// ErrOrphanDevice is returned by the deep load for a device whose room
	// does not exist.
	ErrOrphanDevice = errors.New("device references unknown room")
	// ErrUnknownDeviceKind is returned by the deep load for a kind column
	// that is neither sensor nor actuator.
	ErrUnknownDeviceKind = errors.New("unknown device kind")
)
