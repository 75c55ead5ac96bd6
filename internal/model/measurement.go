package model

import "time"

// Measurement is a row of the measurements table.
type Measurement struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	DeviceID  string    `gorm:"column:device;size:64;not null;index:idx_measurements_device_ts,priority:1"`
	Value     float64   `gorm:"not null"`
	Timestamp time.Time `gorm:"column:ts;not null;index:idx_measurements_device_ts,priority:2"`
	Unit      string    `gorm:"size:16"`
}

// State is a row of the states table. A NULL state means off.
type State struct {
	DeviceID string   `gorm:"column:device;primaryKey;size:64"`
	Value    *float64 `gorm:"column:state"`
}
