package domain

// DeviceKind names the capability set of a device.
type DeviceKind string

const (
	KindSensor             DeviceKind = "sensor"
	KindActuator           DeviceKind = "actuator"
	KindActuatorWithSensor DeviceKind = "actuator_with_sensor"
)

// SensorPart is the sensing capability of a device.
type SensorPart struct {
	Unit string
}

// ActuatorPart is the actuation capability of a device.
type ActuatorPart struct {
	State State
}

// TurnOn switches the actuator on without an explicit level.
func (a *ActuatorPart) TurnOn() {
	a.State = On()
}

// TurnOnAt switches the actuator on at the given level.
func (a *ActuatorPart) TurnOnAt(level float64) {
	a.State = OnAt(level)
}

// TurnOff switches the actuator off.
func (a *ActuatorPart) TurnOff() {
	a.State = Off()
}

// IsActive reports whether the actuator is on.
func (a *ActuatorPart) IsActive() bool {
	return a.State.On
}

// Device is a sensor, an actuator, or both. Which parts are set is fixed
// at construction.
type Device struct {
	ID        string
	ModelName string
	Supplier  string
	Category  string
	Room      *Room

	sensor   *SensorPart
	actuator *ActuatorPart
}

// NewSensor creates a sensing-only device.
func NewSensor(id, modelName, supplier, category, unit string) *Device {
	return &Device{
		ID: id, ModelName: modelName, Supplier: supplier, Category: category,
		sensor: &SensorPart{Unit: unit},
	}
}

// NewActuator creates an actuation-only device, initially off.
func NewActuator(id, modelName, supplier, category string) *Device {
	return &Device{
		ID: id, ModelName: modelName, Supplier: supplier, Category: category,
		actuator: &ActuatorPart{},
	}
}

// NewActuatorWithSensor creates a device that both senses and actuates,
// like a heat pump.
func NewActuatorWithSensor(id, modelName, supplier, category, unit string) *Device {
	return &Device{
		ID: id, ModelName: modelName, Supplier: supplier, Category: category,
		sensor:   &SensorPart{Unit: unit},
		actuator: &ActuatorPart{},
	}
}

// Kind derives the device kind from its capabilities.
func (d *Device) Kind() DeviceKind {
	switch {
	case d.sensor != nil && d.actuator != nil:
		return KindActuatorWithSensor
	case d.actuator != nil:
		return KindActuator
	default:
		return KindSensor
	}
}

// AsSensor returns the sensing capability, if any.
func (d *Device) AsSensor() (*SensorPart, bool) {
	return d.sensor, d.sensor != nil
}

// AsActuator returns the actuation capability, if any.
func (d *Device) AsActuator() (*ActuatorPart, bool) {
	return d.actuator, d.actuator != nil
}

func (d *Device) IsSensor() bool   { return d.sensor != nil }
func (d *Device) IsActuator() bool { return d.actuator != nil }
