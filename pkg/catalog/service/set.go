package service

import (
	"context"
	"fmt"

	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/database/models"
	"github.com/latoulicious/setforge/pkg/logging"
)

type SetService struct {
	service    *catalog.Service
	logger     logging.Logger
	sets       *shared.SetMapper
	cards      *shared.CardMapper
	archetypes *shared.ArchetypeMapper
}

var _ catalog.SetServiceInterface = (*SetService)(nil)

func NewSetService(s *catalog.Service) *SetService {
	return &SetService{
		service:    s,
		logger:     s.ServiceLogger("sets"),
		sets:       shared.NewSetMapper(),
		cards:      shared.NewCardMapper(),
		archetypes: shared.NewArchetypeMapper(),
	}
}

// ListSets returns every set with its card count
func (ss *SetService) ListSets(ctx context.Context) ([]shared.SetSummary, error) {
	rows, err := ss.service.SetRepo.List(ctx)
	if err != nil {
		ss.logger.Error("Failed to list sets", err, nil)
		return nil, err
	}

	out := make([]shared.SetSummary, 0, len(rows))
	for i := range rows {
		out = append(out, *ss.sets.ToSummary(&rows[i].Set, rows[i].CardCount))
	}
	return out, nil
}

// GetSet returns a set with its archetypes and cards. Card archetypes are
// resolved from the set's own archetypes, with one batch query for any
// reference that points elsewhere.
func (ss *SetService) GetSet(ctx context.Context, id uint) (*shared.SetDetail, error) {
	set, err := ss.service.SetRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	archetypes, err := ss.service.ArchetypeRepo.ListBySet(ctx, id)
	if err != nil {
		ss.logger.Error("Failed to load archetypes", err, map[string]interface{}{"set_id": id})
		return nil, err
	}
	cards, err := ss.service.CardRepo.ListBySet(ctx, id)
	if err != nil {
		ss.logger.Error("Failed to load cards", err, map[string]interface{}{"set_id": id})
		return nil, err
	}

	byID := make(map[uint]models.Archetype, len(archetypes))
	for _, a := range archetypes {
		byID[a.ID] = a
	}

	var missing []uint
	for _, c := range cards {
		if c.ArchetypeID == nil {
			continue
		}
		if _, ok := byID[*c.ArchetypeID]; !ok {
			missing = append(missing, *c.ArchetypeID)
		}
	}
	if len(missing) > 0 {
		extra, err := ss.service.ArchetypeRepo.GetMany(ctx, missing)
		if err != nil {
			return nil, err
		}
		for k, v := range extra {
			byID[k] = v
		}
	}

	detail := ss.sets.ToDetail(set)
	for i := range archetypes {
		detail.Archetypes = append(detail.Archetypes, *ss.archetypes.ToShared(&archetypes[i]))
	}
	for i := range cards {
		var ref *models.Archetype
		if cards[i].ArchetypeID != nil {
			if a, ok := byID[*cards[i].ArchetypeID]; ok {
				ref = &a
			}
		}
		detail.Cards = append(detail.Cards, *ss.cards.ToShared(&cards[i], ref))
	}

	return detail, nil
}

// CreateSet stores a new set
func (ss *SetService) CreateSet(ctx context.Context, input shared.SetInput) (*shared.SetSummary, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(input.Target); err != nil {
		return nil, err
	}
	input.Name = name

	set := ss.sets.ToDatabase(input)
	if err := ss.service.SetRepo.Create(ctx, set); err != nil {
		ss.logger.Error("Failed to create set", err, map[string]interface{}{"name": name})
		return nil, fmt.Errorf("create set: %w", err)
	}

	ss.service.Metrics.EntityWritten("set", "create")
	ss.logger.Info("Set created", map[string]interface{}{"set_id": set.ID, "name": set.Name})
	return ss.sets.ToSummary(set, 0), nil
}

// UpdateSet applies a partial update to a set
func (ss *SetService) UpdateSet(ctx context.Context, id uint, patch shared.SetPatch) (*shared.SetSummary, error) {
	set, err := ss.service.SetRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	ss.sets.ApplyPatch(set, patch)
	if err := validateTarget(ss.sets.Target(set)); err != nil {
		return nil, err
	}

	if err := ss.service.SetRepo.Update(ctx, set); err != nil {
		ss.logger.Error("Failed to update set", err, map[string]interface{}{"set_id": id})
		return nil, fmt.Errorf("update set %d: %w", id, err)
	}

	count, err := ss.service.CardRepo.CountBySet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count cards of set %d: %w", id, err)
	}

	ss.service.Metrics.EntityWritten("set", "update")
	ss.logger.Info("Set updated", map[string]interface{}{"set_id": id})
	return ss.sets.ToSummary(set, count), nil
}

// DeleteSet removes a set with all of its cards and archetypes
func (ss *SetService) DeleteSet(ctx context.Context, id uint) error {
	if err := ss.service.SetRepo.Delete(ctx, id); err != nil {
		if !catalog.IsNotFound(err) {
			ss.logger.Error("Failed to delete set", err, map[string]interface{}{"set_id": id})
		}
		return err
	}

	ss.service.Metrics.EntityWritten("set", "delete")
	ss.logger.Info("Set deleted", map[string]interface{}{"set_id": id})
	return nil
}
