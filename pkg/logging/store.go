package logging

import (
	"time"

	"github.com/google/uuid"
	"github.com/latoulicious/setforge/pkg/database/models"
)

// AppLogSaver is the storage side of the app_logs table
type AppLogSaver interface {
	SaveLog(entry *models.AppLog) error
}

// GormLogStore adapts the app_logs repository to LogRepository
type GormLogStore struct {
	saver AppLogSaver
	now   func() time.Time
}

// NewGormLogStore wraps the app_logs repository
func NewGormLogStore(saver AppLogSaver) *GormLogStore {
	return &GormLogStore{saver: saver, now: time.Now}
}

// SaveLog converts the entry into an AppLog row and stores it
func (s *GormLogStore) SaveLog(entry LogEntry) error {
	component := entry.Component
	if component == "" {
		component = "app"
	}
	return s.saver.SaveLog(&models.AppLog{
		ID:        uuid.New(),
		Component: component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    entry.Fields,
		SetID:     entry.SetID,
		RequestID: entry.RequestID,
		Timestamp: s.now().UTC(),
	})
}
