package repository

import (
	"context"
	"fmt"

	"github.com/latoulicious/setforge/pkg/database/models"
	"gorm.io/gorm"
)

// SetRepository handles database operations for the Set model
type SetRepository struct {
	db *gorm.DB
}

func NewSetRepository(db *gorm.DB) *SetRepository {
	return &SetRepository{db: db}
}

// SetWithCount pairs a set with the number of cards entered for it
type SetWithCount struct {
	Set       models.Set
	CardCount int64
}

// List returns every set with its card count
func (r *SetRepository) List(ctx context.Context) ([]SetWithCount, error) {
	var sets []models.Set
	if err := r.db.WithContext(ctx).Order("id").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	var counts []struct {
		SetID uint
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&models.Card{}).
		Select("set_id, COUNT(*) as count").
		Group("set_id").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count cards per set: %w", err)
	}

	bySet := make(map[uint]int64, len(counts))
	for _, c := range counts {
		bySet[c.SetID] = c.Count
	}

	result := make([]SetWithCount, 0, len(sets))
	for _, s := range sets {
		result = append(result, SetWithCount{Set: s, CardCount: bySet[s.ID]})
	}
	return result, nil
}

// Get returns a set by id
func (r *SetRepository) Get(ctx context.Context, id uint) (*models.Set, error) {
	var set models.Set
	if err := r.db.WithContext(ctx).First(&set, id).Error; err != nil {
		return nil, notFound(err, "set", id)
	}
	return &set, nil
}

// Exists reports whether a set with the id exists
func (r *SetRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Set{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check set %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *SetRepository) Create(ctx context.Context, set *models.Set) error {
	return r.db.WithContext(ctx).Create(set).Error
}

// Update writes every column of the set, zero values included
func (r *SetRepository) Update(ctx context.Context, set *models.Set) error {
	return r.db.WithContext(ctx).Save(set).Error
}

// Delete removes a set together with its cards and archetypes
func (r *SetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var set models.Set
		if err := tx.First(&set, id).Error; err != nil {
			return notFound(err, "set", id)
		}
		// cards first: they may reference the set's archetypes
		if err := tx.Where("set_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return fmt.Errorf("delete cards of set %d: %w", id, err)
		}
		if err := tx.Where("set_id = ?", id).Delete(&models.Archetype{}).Error; err != nil {
			return fmt.Errorf("delete archetypes of set %d: %w", id, err)
		}
		if err := tx.Delete(&set).Error; err != nil {
			return fmt.Errorf("delete set %d: %w", id, err)
		}
		return nil
	})
}
