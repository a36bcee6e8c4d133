package shared

import (
	"github.com/latoulicious/setforge/pkg/crunch"
	"github.com/latoulicious/setforge/pkg/database/models"
	"github.com/latoulicious/setforge/pkg/mtg"
)

// SetMapper handles conversion between database and shared set types
type SetMapper struct{}

// NewSetMapper creates a new set mapper
func NewSetMapper() *SetMapper {
	return &SetMapper{}
}

// Target extracts the stored target distribution
func (m *SetMapper) Target(set *models.Set) crunch.Target {
	return crunch.Target{
		TotalCards:      set.TotalCards,
		WhiteCards:      set.WhiteCards,
		BlueCards:       set.BlueCards,
		BlackCards:      set.BlackCards,
		RedCards:        set.RedCards,
		GreenCards:      set.GreenCards,
		ColorlessCards:  set.ColorlessCards,
		MulticolorCards: set.MulticolorCards,
		LandsCards:      set.LandsCards,
		BasicLandsCards: set.BasicLandsCards,
	}
}

// ToSummary converts a database set to a shared summary
func (m *SetMapper) ToSummary(set *models.Set, cardCount int64) *SetSummary {
	if set == nil {
		return nil
	}

	return &SetSummary{
		ID:          set.ID,
		Name:        set.Name,
		Description: set.Description,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
		Target:      m.Target(set),
		CardCount:   cardCount,
	}
}

// ToDetail converts a database set to a shared detail without its children
func (m *SetMapper) ToDetail(set *models.Set) *SetDetail {
	if set == nil {
		return nil
	}

	return &SetDetail{
		ID:          set.ID,
		Name:        set.Name,
		Description: set.Description,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
		Target:      m.Target(set),
		Archetypes:  []Archetype{},
		Cards:       []Card{},
	}
}

// ToDatabase converts a set input to a database set
func (m *SetMapper) ToDatabase(input SetInput) *models.Set {
	return &models.Set{
		Name:            input.Name,
		Description:     input.Description,
		TotalCards:      input.TotalCards,
		WhiteCards:      input.WhiteCards,
		BlueCards:       input.BlueCards,
		BlackCards:      input.BlackCards,
		RedCards:        input.RedCards,
		GreenCards:      input.GreenCards,
		ColorlessCards:  input.ColorlessCards,
		MulticolorCards: input.MulticolorCards,
		LandsCards:      input.LandsCards,
		BasicLandsCards: input.BasicLandsCards,
	}
}

// ApplyPatch copies the provided patch fields onto the set
func (m *SetMapper) ApplyPatch(set *models.Set, patch SetPatch) {
	if patch.Name != nil {
		set.Name = *patch.Name
	}
	if patch.Description != nil {
		set.Description = *patch.Description
	}
	for _, f := range []struct {
		src *int
		dst *int
	}{
		{patch.TotalCards, &set.TotalCards},
		{patch.WhiteCards, &set.WhiteCards},
		{patch.BlueCards, &set.BlueCards},
		{patch.BlackCards, &set.BlackCards},
		{patch.RedCards, &set.RedCards},
		{patch.GreenCards, &set.GreenCards},
		{patch.ColorlessCards, &set.ColorlessCards},
		{patch.MulticolorCards, &set.MulticolorCards},
		{patch.LandsCards, &set.LandsCards},
		{patch.BasicLandsCards, &set.BasicLandsCards},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}

// CardMapper handles conversion between database and shared card types
type CardMapper struct{}

// NewCardMapper creates a new card mapper
func NewCardMapper() *CardMapper {
	return &CardMapper{}
}

// ToShared converts a database card to a shared card. archetype may be nil.
func (m *CardMapper) ToShared(card *models.Card, archetype *models.Archetype) *Card {
	if card == nil {
		return nil
	}

	colors := []string(card.Colors)
	if colors == nil {
		colors = []string{}
	}

	out := &Card{
		ID:          card.ID,
		SetID:       card.SetID,
		Name:        card.Name,
		ManaCost:    card.ManaCost,
		TypeLine:    card.TypeLine,
		Text:        card.Text,
		Power:       card.Power,
		Toughness:   card.Toughness,
		Colors:      colors,
		Rarity:      card.Rarity,
		ArchetypeID: card.ArchetypeID,
		CreatedAt:   card.CreatedAt,
	}
	if archetype != nil {
		out.Archetype = &ArchetypeRef{
			ID:        archetype.ID,
			Name:      archetype.Name,
			ColorPair: archetype.ColorPair,
		}
	}
	return out
}

// ToSummary projects a stored card summary for the number crunch
func (m *CardMapper) ToSummary(summary models.CardSummary) crunch.CardSummary {
	return crunch.CardSummary{
		Colors: []string(summary.Colors),
		Rarity: summary.Rarity,
	}
}

// ArchetypeMapper handles conversion between database and shared archetype types
type ArchetypeMapper struct{}

// NewArchetypeMapper creates a new archetype mapper
func NewArchetypeMapper() *ArchetypeMapper {
	return &ArchetypeMapper{}
}

// ToShared converts a database archetype to a shared archetype
func (m *ArchetypeMapper) ToShared(archetype *models.Archetype) *Archetype {
	if archetype == nil {
		return nil
	}

	return &Archetype{
		ID:          archetype.ID,
		SetID:       archetype.SetID,
		Name:        archetype.Name,
		ColorPair:   archetype.ColorPair,
		Colors:      mtg.PairColors(archetype.ColorPair),
		Guild:       mtg.GuildName(archetype.ColorPair),
		Description: archetype.Description,
		CreatedAt:   archetype.CreatedAt,
	}
}
