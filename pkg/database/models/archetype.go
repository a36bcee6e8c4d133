package models

import "time"

// Archetype represents a named two-color strategy within a set
type Archetype struct {
	ID          uint      `gorm:"primaryKey"`
	SetID       uint      `gorm:"index;not null"`
	Name        string    `gorm:"size:100;not null"`
	ColorPair   string    `gorm:"size:10;not null"` // e.g. "WU", "BR"
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for Archetype
func (Archetype) TableName() string {
	return "archetype"
}
