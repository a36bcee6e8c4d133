package repository

import (
	"context"
	"fmt"

	"github.com/latoulicious/setforge/pkg/database/models"
	"gorm.io/gorm"
)

// ArchetypeRepository handles database operations for the Archetype model
type ArchetypeRepository struct {
	db *gorm.DB
}

func NewArchetypeRepository(db *gorm.DB) *ArchetypeRepository {
	return &ArchetypeRepository{db: db}
}

func (r *ArchetypeRepository) ListBySet(ctx context.Context, setID uint) ([]models.Archetype, error) {
	var archetypes []models.Archetype
	if err := r.db.WithContext(ctx).Where("set_id = ?", setID).Order("id").Find(&archetypes).Error; err != nil {
		return nil, fmt.Errorf("list archetypes of set %d: %w", setID, err)
	}
	return archetypes, nil
}

// GetMany loads the archetypes with the given ids in one query, keyed by id.
// Missing ids are simply absent from the map.
func (r *ArchetypeRepository) GetMany(ctx context.Context, ids []uint) (map[uint]models.Archetype, error) {
	result := make(map[uint]models.Archetype, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var archetypes []models.Archetype
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&archetypes).Error; err != nil {
		return nil, fmt.Errorf("load archetypes: %w", err)
	}
	for _, a := range archetypes {
		result[a.ID] = a
	}
	return result, nil
}

func (r *ArchetypeRepository) Get(ctx context.Context, id uint) (*models.Archetype, error) {
	var archetype models.Archetype
	if err := r.db.WithContext(ctx).First(&archetype, id).Error; err != nil {
		return nil, notFound(err, "archetype", id)
	}
	return &archetype, nil
}

func (r *ArchetypeRepository) Create(ctx context.Context, archetype *models.Archetype) error {
	return r.db.WithContext(ctx).Create(archetype).Error
}

func (r *ArchetypeRepository) Update(ctx context.Context, archetype *models.Archetype) error {
	return r.db.WithContext(ctx).Save(archetype).Error
}

// Delete removes an archetype and clears it from any card tagged with it
func (r *ArchetypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var archetype models.Archetype
		if err := tx.First(&archetype, id).Error; err != nil {
			return notFound(err, "archetype", id)
		}
		if err := tx.Model(&models.Card{}).
			Where("archetype_id = ?", id).
			Update("archetype_id", nil).Error; err != nil {
			return fmt.Errorf("unlink cards from archetype %d: %w", id, err)
		}
		if err := tx.Delete(&archetype).Error; err != nil {
			return fmt.Errorf("delete archetype %d: %w", id, err)
		}
		return nil
	})
}
