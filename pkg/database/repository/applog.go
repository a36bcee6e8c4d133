package repository

import (
	"context"
	"time"

	"github.com/latoulicious/setforge/pkg/database/models"
	"gorm.io/gorm"
)

// LogRepository persists application log entries
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) SaveLog(entry *models.AppLog) error {
	return r.db.Create(entry).Error
}

// Recent returns the newest log entries, optionally filtered by level
func (r *LogRepository) Recent(ctx context.Context, level string, limit int) ([]models.AppLog, error) {
	q := r.db.WithContext(ctx).Order("timestamp DESC").Limit(limit)
	if level != "" {
		q = q.Where("level = ?", level)
	}
	var logs []models.AppLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// PurgeBefore deletes entries older than the cutoff and returns how many went
func (r *LogRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.AppLog{})
	return res.RowsAffected, res.Error
}
