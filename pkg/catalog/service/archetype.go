package service

import (
	"context"
	"fmt"

	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/database/models"
	"github.com/latoulicious/setforge/pkg/logging"
	"github.com/latoulicious/setforge/pkg/mtg"
)

type ArchetypeService struct {
	service *catalog.Service
	logger  logging.Logger
	mapper  *shared.ArchetypeMapper
}

var _ catalog.ArchetypeServiceInterface = (*ArchetypeService)(nil)

func NewArchetypeService(s *catalog.Service) *ArchetypeService {
	return &ArchetypeService{
		service: s,
		logger:  s.ServiceLogger("archetypes"),
		mapper:  shared.NewArchetypeMapper(),
	}
}

// ListArchetypes returns the archetypes of an existing set
func (as *ArchetypeService) ListArchetypes(ctx context.Context, setID uint) ([]shared.Archetype, error) {
	if err := requireSet(ctx, as.service, setID); err != nil {
		return nil, err
	}

	archetypes, err := as.service.ArchetypeRepo.ListBySet(ctx, setID)
	if err != nil {
		as.logger.Error("Failed to list archetypes", err, map[string]interface{}{"set_id": setID})
		return nil, err
	}

	out := make([]shared.Archetype, 0, len(archetypes))
	for i := range archetypes {
		out = append(out, *as.mapper.ToShared(&archetypes[i]))
	}
	return out, nil
}

func (as *ArchetypeService) GetArchetype(ctx context.Context, id uint) (*shared.Archetype, error) {
	archetype, err := as.service.ArchetypeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return as.mapper.ToShared(archetype), nil
}

// CreateArchetype adds an archetype to an existing set. The color pair is
// stored upper-cased in the order given.
func (as *ArchetypeService) CreateArchetype(ctx context.Context, setID uint, input shared.ArchetypeInput) (*shared.Archetype, error) {
	if err := requireSet(ctx, as.service, setID); err != nil {
		return nil, err
	}

	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	pair, err := mtg.ParseColorPair(input.ColorPair)
	if err != nil {
		return nil, catalog.Invalid("color_pair", err.Error())
	}

	archetype := &models.Archetype{
		SetID:       setID,
		Name:        name,
		ColorPair:   pair,
		Description: input.Description,
	}
	if err := as.service.ArchetypeRepo.Create(ctx, archetype); err != nil {
		as.logger.Error("Failed to create archetype", err, map[string]interface{}{"set_id": setID})
		return nil, fmt.Errorf("create archetype: %w", err)
	}

	as.service.Metrics.EntityWritten("archetype", "create")
	as.logger.Info("Archetype created", map[string]interface{}{
		"set_id":       setID,
		"archetype_id": archetype.ID,
		"color_pair":   pair,
	})
	return as.mapper.ToShared(archetype), nil
}

func (as *ArchetypeService) UpdateArchetype(ctx context.Context, id uint, patch shared.ArchetypePatch) (*shared.Archetype, error) {
	archetype, err := as.service.ArchetypeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		archetype.Name = name
	}
	if patch.ColorPair != nil {
		pair, err := mtg.ParseColorPair(*patch.ColorPair)
		if err != nil {
			return nil, catalog.Invalid("color_pair", err.Error())
		}
		archetype.ColorPair = pair
	}
	if patch.Description != nil {
		archetype.Description = *patch.Description
	}

	if err := as.service.ArchetypeRepo.Update(ctx, archetype); err != nil {
		as.logger.Error("Failed to update archetype", err, map[string]interface{}{"archetype_id": id})
		return nil, fmt.Errorf("update archetype %d: %w", id, err)
	}

	as.service.Metrics.EntityWritten("archetype", "update")
	return as.mapper.ToShared(archetype), nil
}

// DeleteArchetype removes an archetype. Cards tagged with it keep existing
// and lose the tag.
func (as *ArchetypeService) DeleteArchetype(ctx context.Context, id uint) error {
	if err := as.service.ArchetypeRepo.Delete(ctx, id); err != nil {
		if !catalog.IsNotFound(err) {
			as.logger.Error("Failed to delete archetype", err, map[string]interface{}{"archetype_id": id})
		}
		return err
	}

	as.service.Metrics.EntityWritten("archetype", "delete")
	as.logger.Info("Archetype deleted", map[string]interface{}{"archetype_id": id})
	return nil
}
