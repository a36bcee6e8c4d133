package repository

import (
	"context"
	"fmt"

	"github.com/latoulicious/setforge/pkg/database/models"
	"gorm.io/gorm"
)

// CardRepository handles database operations for the Card model
type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// ListBySet returns the cards of a set in insertion order
func (r *CardRepository) ListBySet(ctx context.Context, setID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.WithContext(ctx).Where("set_id = ?", setID).Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list cards of set %d: %w", setID, err)
	}
	return cards, nil
}

// ListSummariesBySet loads only the columns the number crunch needs
func (r *CardRepository) ListSummariesBySet(ctx context.Context, setID uint) ([]models.CardSummary, error) {
	var summaries []models.CardSummary
	if err := r.db.WithContext(ctx).Model(&models.Card{}).
		Select("colors, rarity").
		Where("set_id = ?", setID).
		Order("id").
		Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("summarize cards of set %d: %w", setID, err)
	}
	return summaries, nil
}

func (r *CardRepository) Get(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, notFound(err, "card", id)
	}
	return &card, nil
}

func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// Update writes every column of the card, including a cleared archetype
func (r *CardRepository) Update(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Omit("Archetype").Save(card).Error
}

func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Card{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete card %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("card %d: %w", id, ErrNotFound)
	}
	return nil
}

// CountBySet returns the number of cards entered for a set
func (r *CardRepository) CountBySet(ctx context.Context, setID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).Where("set_id = ?", setID).Count(&count).Error
	return count, err
}
