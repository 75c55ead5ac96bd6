package model

// Room is a row of the rooms table.
type Room struct {
	ID    int64   `gorm:"primaryKey"`
	Floor int     `gorm:"not null;index"`
	Name  string  `gorm:"uniqueIndex;size:128;not null"`
	Size  float64 `gorm:"not null"`
}
