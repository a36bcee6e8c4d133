package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Card represents a single card entered under a set
type Card struct {
	ID          uint      `gorm:"primaryKey"`
	SetID       uint      `gorm:"index;not null"`
	ArchetypeID *uint     `gorm:"index"`
	Name        string    `gorm:"size:100;not null"`
	ManaCost    string    `gorm:"size:50"`
	TypeLine    string    `gorm:"size:100"`
	Text        string    `gorm:"type:text"`
	Power       string    `gorm:"size:10"`
	Toughness   string    `gorm:"size:10"`
	Colors      ColorList `gorm:"type:text"`
	Rarity      string    `gorm:"size:20;index;default:'common'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	// Relationships
	Archetype *Archetype `gorm:"foreignKey:ArchetypeID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Card
func (Card) TableName() string {
	return "card"
}

// CardSummary is the projection of a card used by the number crunch
type CardSummary struct {
	Colors ColorList
	Rarity string
}

// ColorList is a card's color identity, stored as a JSON array of color names
type ColorList []string

// Value implements driver.Valuer
func (c ColorList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(c))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (c *ColorList) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*c = ColorList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into ColorList", value)
	}

	if len(data) == 0 {
		*c = ColorList{}
		return nil
	}

	var colors []string
	if err := json.Unmarshal(data, &colors); err != nil {
		return fmt.Errorf("decode color list: %w", err)
	}
	if colors == nil {
		colors = []string{}
	}
	*c = colors
	return nil
}
