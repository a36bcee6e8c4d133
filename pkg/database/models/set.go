package models

import "time"

// Set represents a custom card set and its target distribution
type Set struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	// Target distribution
	TotalCards      int `gorm:"default:0"`
	WhiteCards      int `gorm:"default:0"`
	BlueCards       int `gorm:"default:0"`
	BlackCards      int `gorm:"default:0"`
	RedCards        int `gorm:"default:0"`
	GreenCards      int `gorm:"default:0"`
	ColorlessCards  int `gorm:"default:0"`
	MulticolorCards int `gorm:"default:0"`
	LandsCards      int `gorm:"default:0"`
	BasicLandsCards int `gorm:"default:0"`

	// Relationships
	Cards      []Card      `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`
	Archetypes []Archetype `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Set
func (Set) TableName() string {
	return "custom_set"
}

