package models

import (
	"time"

	"github.com/google/uuid"
)

// AppLog represents a log entry persisted by the database-backed logger
type AppLog struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	Component string                 `gorm:"index;not null;default:'app'" json:"component"` // "api", "catalog", "reporter", etc.
	Level     string                 `gorm:"index;not null" json:"level"`                   // INFO, ERROR, WARN, DEBUG
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Error     string                 `gorm:"type:text" json:"error"`
	Fields    map[string]interface{} `gorm:"serializer:json" json:"fields"`
	SetID     *uint                  `gorm:"index" json:"set_id,omitempty"`
	RequestID string                 `gorm:"index" json:"request_id"`
	Timestamp time.Time              `gorm:"index;not null" json:"timestamp"`
}

// TableName returns the table name for AppLog
func (AppLog) TableName() string {
	return "app_logs"
}
