// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/latoulicious/setforge/pkg/database"
	"github.com/latoulicious/setforge/pkg/database/migration"
	"github.com/stretchr/testify/require"
)

// NewManager returns a Manager over a private in-memory sqlite database with
// every table migrated. The database is closed when the test ends.
func NewManager(t testing.TB) *database.Manager {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewGormDB(dsn, database.WithPool(1, 1))
	require.NoError(t, err)
	require.NoError(t, migration.RunMigration(db))

	m := database.NewManager(db)
	t.Cleanup(func() { _ = m.Close() })
	return m
}
