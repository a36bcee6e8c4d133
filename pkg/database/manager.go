package database

import (
	"context"
	"database/sql"

	"github.com/latoulicious/setforge/pkg/database/repository"
	"gorm.io/gorm"
)

// Manager owns the database handle and the repositories built on it.
// One Manager is constructed at startup and passed to whoever needs storage.
type Manager struct {
	db *gorm.DB

	Sets       *repository.SetRepository
	Cards      *repository.CardRepository
	Archetypes *repository.ArchetypeRepository
	Logs       *repository.LogRepository
}

// NewManager wires the repositories around an open GORM handle
func NewManager(gormDB *gorm.DB) *Manager {
	return &Manager{
		db:         gormDB,
		Sets:       repository.NewSetRepository(gormDB),
		Cards:      repository.NewCardRepository(gormDB),
		Archetypes: repository.NewArchetypeRepository(gormDB),
		Logs:       repository.NewLogRepository(gormDB),
	}
}

// DB exposes the underlying GORM handle
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks that the database is reachable
func (m *Manager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats returns connection pool statistics
func (m *Manager) Stats() (sql.DBStats, error) {
	sqlDB, err := m.db.DB()
	if err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
