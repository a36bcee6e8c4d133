package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/database/models"
	"github.com/latoulicious/setforge/pkg/logging"
	"github.com/latoulicious/setforge/pkg/mtg"
)

type CardService struct {
	service *catalog.Service
	logger  logging.Logger
	mapper  *shared.CardMapper
}

var _ catalog.CardServiceInterface = (*CardService)(nil)

func NewCardService(s *catalog.Service) *CardService {
	return &CardService{
		service: s,
		logger:  s.ServiceLogger("cards"),
		mapper:  shared.NewCardMapper(),
	}
}

// DeriveColors returns the color identity of a mana cost
func (cs *CardService) DeriveColors(manaCost string) []string {
	return mtg.ParseManaCost(manaCost)
}

// GetCard returns a card with its archetype summary
func (cs *CardService) GetCard(ctx context.Context, id uint) (*shared.Card, error) {
	card, err := cs.service.CardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return cs.toShared(ctx, card)
}

// CreateCard adds a card to an existing set. Colors default to the ones
// derived from the mana cost.
func (cs *CardService) CreateCard(ctx context.Context, setID uint, input shared.CardInput) (*shared.Card, error) {
	if err := requireSet(ctx, cs.service, setID); err != nil {
		return nil, err
	}

	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	rarity, err := mtg.ParseRarity(input.Rarity)
	if err != nil {
		return nil, catalog.Invalid("rarity", err.Error())
	}

	var colors []string
	if len(input.Colors) > 0 {
		if colors, err = mtg.NormalizeColors(input.Colors); err != nil {
			return nil, catalog.Invalid("colors", err.Error())
		}
	} else {
		colors = mtg.ParseManaCost(input.ManaCost)
	}

	if err := cs.checkArchetype(ctx, setID, input.ArchetypeID); err != nil {
		return nil, err
	}

	card := &models.Card{
		SetID:       setID,
		ArchetypeID: input.ArchetypeID,
		Name:        name,
		ManaCost:    strings.TrimSpace(input.ManaCost),
		TypeLine:    input.TypeLine,
		Text:        input.Text,
		Power:       input.Power,
		Toughness:   input.Toughness,
		Colors:      colors,
		Rarity:      rarity,
	}
	if err := cs.service.CardRepo.Create(ctx, card); err != nil {
		cs.logger.Error("Failed to create card", err, map[string]interface{}{"set_id": setID, "name": name})
		return nil, fmt.Errorf("create card: %w", err)
	}

	cs.service.Metrics.EntityWritten("card", "create")
	cs.logger.Info("Card created", map[string]interface{}{
		"set_id":  setID,
		"card_id": card.ID,
		"colors":  colors,
	})
	return cs.toShared(ctx, card)
}

// UpdateCard applies a partial update. A non-empty colors list replaces the
// stored colors. Otherwise a non-empty new mana cost re-derives them, and
// failing both the stored colors are kept. An empty rarity keeps the stored
// one; the common default only applies on create.
func (cs *CardService) UpdateCard(ctx context.Context, id uint, patch shared.CardPatch) (*shared.Card, error) {
	card, err := cs.service.CardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case len(patch.Colors) > 0:
		colors, err := mtg.NormalizeColors(patch.Colors)
		if err != nil {
			return nil, catalog.Invalid("colors", err.Error())
		}
		card.Colors = colors
	case patch.ManaCost != nil && strings.TrimSpace(*patch.ManaCost) != "":
		card.Colors = mtg.ParseManaCost(*patch.ManaCost)
	}

	if patch.Name != nil {
		name, err := validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		card.Name = name
	}
	if patch.ManaCost != nil {
		card.ManaCost = strings.TrimSpace(*patch.ManaCost)
	}
	if patch.TypeLine != nil {
		card.TypeLine = *patch.TypeLine
	}
	if patch.Text != nil {
		card.Text = *patch.Text
	}
	if patch.Power != nil {
		card.Power = *patch.Power
	}
	if patch.Toughness != nil {
		card.Toughness = *patch.Toughness
	}
	if patch.Rarity != nil && strings.TrimSpace(*patch.Rarity) != "" {
		rarity, err := mtg.ParseRarity(*patch.Rarity)
		if err != nil {
			return nil, catalog.Invalid("rarity", err.Error())
		}
		card.Rarity = rarity
	}
	if patch.ArchetypeID.Present {
		if err := cs.checkArchetype(ctx, card.SetID, patch.ArchetypeID.Value); err != nil {
			return nil, err
		}
		card.ArchetypeID = patch.ArchetypeID.Value
	}

	if err := cs.service.CardRepo.Update(ctx, card); err != nil {
		cs.logger.Error("Failed to update card", err, map[string]interface{}{"card_id": id})
		return nil, fmt.Errorf("update card %d: %w", id, err)
	}

	cs.service.Metrics.EntityWritten("card", "update")
	cs.logger.Info("Card updated", map[string]interface{}{"card_id": id, "set_id": card.SetID})
	return cs.toShared(ctx, card)
}

// DeleteCard removes a card
func (cs *CardService) DeleteCard(ctx context.Context, id uint) error {
	if err := cs.service.CardRepo.Delete(ctx, id); err != nil {
		if !catalog.IsNotFound(err) {
			cs.logger.Error("Failed to delete card", err, map[string]interface{}{"card_id": id})
		}
		return err
	}

	cs.service.Metrics.EntityWritten("card", "delete")
	cs.logger.Info("Card deleted", map[string]interface{}{"card_id": id})
	return nil
}

// checkArchetype makes sure a referenced archetype exists in the card's set
func (cs *CardService) checkArchetype(ctx context.Context, setID uint, archetypeID *uint) error {
	if archetypeID == nil {
		return nil
	}

	archetype, err := cs.service.ArchetypeRepo.Get(ctx, *archetypeID)
	if err != nil {
		if catalog.IsNotFound(err) {
			return catalog.Invalid("archetype_id", fmt.Sprintf("archetype %d does not exist", *archetypeID))
		}
		return err
	}
	if archetype.SetID != setID {
		return catalog.Invalid("archetype_id", fmt.Sprintf("archetype %d belongs to another set", *archetypeID))
	}
	return nil
}

func (cs *CardService) toShared(ctx context.Context, card *models.Card) (*shared.Card, error) {
	if card.ArchetypeID == nil {
		return cs.mapper.ToShared(card, nil), nil
	}

	archetypes, err := cs.service.ArchetypeRepo.GetMany(ctx, []uint{*card.ArchetypeID})
	if err != nil {
		return nil, err
	}
	if a, ok := archetypes[*card.ArchetypeID]; ok {
		return cs.mapper.ToShared(card, &a), nil
	}
	return cs.mapper.ToShared(card, nil), nil
}
