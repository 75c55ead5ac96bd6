// Package domain holds the in-memory model of the smart house: floors,
// rooms, devices and their readings.
//
// A SmartHouse is built once at startup and then only read. Readings and
// actuator state change at runtime in the store, not here.
package domain
