package shared

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/latoulicious/setforge/pkg/crunch"
)

// SetSummary is a set with its target distribution and card count
type SetSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	crunch.Target
	CardCount int64 `json:"card_count"`
}

// SetDetail is a set with its archetypes and cards
type SetDetail struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	crunch.Target
	Archetypes []Archetype `json:"archetypes"`
	Cards      []Card      `json:"cards"`
}

// Archetype is a two-color strategy within a set
type Archetype struct {
	ID          uint      `json:"id"`
	SetID       uint      `json:"set_id"`
	Name        string    `json:"name"`
	ColorPair   string    `json:"color_pair"`
	Colors      []string  `json:"colors"`
	Guild       string    `json:"guild,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArchetypeRef is the short form of an archetype embedded in a card
type ArchetypeRef struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ColorPair string `json:"color_pair"`
}

// Card is a single card entered under a set
type Card struct {
	ID          uint          `json:"id"`
	SetID       uint          `json:"set_id"`
	Name        string        `json:"name"`
	ManaCost    string        `json:"mana_cost"`
	TypeLine    string        `json:"type_line"`
	Text        string        `json:"text"`
	Power       string        `json:"power"`
	Toughness   string        `json:"toughness"`
	Colors      []string      `json:"colors"`
	Rarity      string        `json:"rarity"`
	ArchetypeID *uint         `json:"archetype_id"`
	Archetype   *ArchetypeRef `json:"archetype"`
	CreatedAt   time.Time     `json:"created_at"`
}

// SetInput holds the fields of a new set
type SetInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	crunch.Target
}

// SetPatch holds the fields to change on a set. Nil fields are left alone.
type SetPatch struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	TotalCards      *int    `json:"total_cards"`
	WhiteCards      *int    `json:"white_cards"`
	BlueCards       *int    `json:"blue_cards"`
	BlackCards      *int    `json:"black_cards"`
	RedCards        *int    `json:"red_cards"`
	GreenCards      *int    `json:"green_cards"`
	ColorlessCards  *int    `json:"colorless_cards"`
	MulticolorCards *int    `json:"multicolor_cards"`
	LandsCards      *int    `json:"lands_cards"`
	BasicLandsCards *int    `json:"basic_lands_cards"`
}

// CardInput holds the fields of a new card. Empty Colors means derive them
// from ManaCost.
type CardInput struct {
	Name        string   `json:"name"`
	ManaCost    string   `json:"mana_cost"`
	TypeLine    string   `json:"type_line"`
	Text        string   `json:"text"`
	Power       string   `json:"power"`
	Toughness   string   `json:"toughness"`
	Colors      []string `json:"colors"`
	Rarity      string   `json:"rarity"`
	ArchetypeID *uint    `json:"archetype_id"`
}

// CardPatch holds the fields to change on a card. Nil fields are left alone.
type CardPatch struct {
	Name        *string    `json:"name"`
	ManaCost    *string    `json:"mana_cost"`
	TypeLine    *string    `json:"type_line"`
	Text        *string    `json:"text"`
	Power       *string    `json:"power"`
	Toughness   *string    `json:"toughness"`
	Colors      []string   `json:"colors"`
	Rarity      *string    `json:"rarity"`
	ArchetypeID OptionalID `json:"archetype_id"`
}

// ArchetypeInput holds the fields of a new archetype
type ArchetypeInput struct {
	Name        string `json:"name"`
	ColorPair   string `json:"color_pair"`
	Description string `json:"description"`
}

// ArchetypePatch holds the fields to change on an archetype
type ArchetypePatch struct {
	Name        *string `json:"name"`
	ColorPair   *string `json:"color_pair"`
	Description *string `json:"description"`
}

// OptionalID tells an absent id apart from an explicit null
type OptionalID struct {
	Present bool
	Value   *uint
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
