package model

// Device kinds as stored in the kind column.
const (
	KindSensor   = "sensor"
	KindActuator = "actuator"
)

// Device is a row of the devices table. Actuators that also sense carry a
// non-null unit.
type Device struct {
	ID       string  `gorm:"primaryKey;size:64"`
	RoomID   int64   `gorm:"column:room;not null;index"`
	Category string  `gorm:"size:128;not null"`
	Kind     string  `gorm:"size:16;not null"`
	Unit     *string `gorm:"size:16"`
	Model    string  `gorm:"size:128"`
	Supplier string  `gorm:"size:128"`
}
