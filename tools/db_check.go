// Package tools holds operational checks run from the command line.
package tools

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/latoulicious/setforge/pkg/database"
	"github.com/latoulicious/setforge/pkg/database/migration"
	"github.com/latoulicious/setforge/pkg/database/models"
	"github.com/latoulicious/setforge/pkg/database/repository"
	"gorm.io/gorm"
)

// CheckResult summarizes a connectivity check
type CheckResult struct {
	Driver        string
	Version       string
	MissingTables []string
	SetCount      int64
	RecentErrors  []models.AppLog
	QueryTime     time.Duration
}

const recentErrorLimit = 5

// DBCheck connects to dsn and verifies ping, version, tables and
// transactions, printing progress to out.
func DBCheck(dsn string, out io.Writer) (*CheckResult, error) {
	driver := database.DriverFor(dsn)
	fmt.Fprintf(out, "=== %s Database Connectivity Check ===\n", driver)

	db, err := database.NewGormDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database connection: %w", err)
	}
	defer sqlDB.Close()

	return CheckDB(db, driver, out)
}

// CheckDB runs the checks against an open handle
func CheckDB(db *gorm.DB, driver string, out io.Writer) (*CheckResult, error) {
	result := &CheckResult{Driver: driver}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database connection: %w", err)
	}

	fmt.Fprintln(out, "🏓 Testing database ping...")
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	fmt.Fprintln(out, "✅ Database ping successful")

	versionQuery := "SELECT version()"
	if driver == database.DriverSQLite {
		versionQuery = "SELECT sqlite_version()"
	}
	if err := db.Raw(versionQuery).Scan(&result.Version).Error; err != nil {
		return nil, fmt.Errorf("failed to get database version: %w", err)
	}
	fmt.Fprintf(out, "✅ %s version: %s\n", driver, result.Version)

	stats := sqlDB.Stats()
	fmt.Fprintf(out, "📊 Pool: open=%d in_use=%d idle=%d\n", stats.OpenConnections, stats.InUse, stats.Idle)

	if err := checkExistingTables(db, result); err != nil {
		fmt.Fprintf(out, "⚠️  Table check warning: %v\n", err)
	} else if len(result.MissingTables) > 0 {
		fmt.Fprintf(out, "⚠️  Missing tables (will be created during migration): %v\n", result.MissingTables)
	} else {
		fmt.Fprintf(out, "✅ All tables exist, %d sets stored\n", result.SetCount)
		if err := checkRecentErrors(db, result, out); err != nil {
			fmt.Fprintf(out, "⚠️  Log check warning: %v\n", err)
		}
	}

	if err := testTransactionCapability(db, driver); err != nil {
		return nil, fmt.Errorf("transaction test failed: %w", err)
	}
	fmt.Fprintln(out, "✅ Transaction capability verified")

	start := time.Now()
	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		return nil, fmt.Errorf("performance test failed: %w", err)
	}
	result.QueryTime = time.Since(start)
	fmt.Fprintf(out, "✅ Simple query completed in %v\n", result.QueryTime)
	if result.QueryTime > 5*time.Second {
		fmt.Fprintln(out, "⚠️  Query took longer than 5 seconds - check network latency")
	}

	fmt.Fprintln(out, "=== Database Connectivity Check Complete ===")
	return result, nil
}

// checkExistingTables records which managed tables are missing and, when
// none are, how many sets are stored
func checkExistingTables(db *gorm.DB, result *CheckResult) error {
	existing, err := db.Migrator().GetTables()
	if err != nil {
		return fmt.Errorf("failed to query existing tables: %w", err)
	}

	tableMap := make(map[string]bool, len(existing))
	for _, table := range existing {
		tableMap[table] = true
	}
	for _, expected := range migration.Tables() {
		if !tableMap[expected] {
			result.MissingTables = append(result.MissingTables, expected)
		}
	}

	if len(result.MissingTables) == 0 {
		if err := db.Model(&models.Set{}).Count(&result.SetCount).Error; err != nil {
			return fmt.Errorf("failed to count sets: %w", err)
		}
	}
	return nil
}

// checkRecentErrors lists the newest persisted ERROR entries
func checkRecentErrors(db *gorm.DB, result *CheckResult, out io.Writer) error {
	logs, err := repository.NewLogRepository(db).Recent(context.Background(), "ERROR", recentErrorLimit)
	if err != nil {
		return fmt.Errorf("failed to read app_logs: %w", err)
	}
	result.RecentErrors = logs

	if len(logs) == 0 {
		fmt.Fprintln(out, "✅ No persisted errors")
		return nil
	}
	fmt.Fprintf(out, "📋 Latest %d persisted errors:\n", len(logs))
	for _, entry := range logs {
		fmt.Fprintf(out, "   - %s [%s] %s: %s\n", entry.Timestamp.UTC().Format(time.RFC3339), entry.Component, entry.Message, entry.Error)
	}
	return nil
}

// testTransactionCapability writes to a temporary table inside a transaction
// and rolls it back
func testTransactionCapability(db *gorm.DB, driver string) error {
	ddl := "CREATE TEMPORARY TABLE test_transaction (id SERIAL PRIMARY KEY, test_data TEXT)"
	if driver == database.DriverSQLite {
		ddl = "CREATE TEMPORARY TABLE test_transaction (id INTEGER PRIMARY KEY AUTOINCREMENT, test_data TEXT)"
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	if err := tx.Exec(ddl).Error; err != nil {
		return fmt.Errorf("failed to create temporary table: %w", err)
	}
	if err := tx.Exec("INSERT INTO test_transaction (test_data) VALUES ('test')").Error; err != nil {
		return fmt.Errorf("failed to insert test data: %w", err)
	}

	var count int64
	if err := tx.Raw("SELECT COUNT(*) FROM test_transaction").Scan(&count).Error; err != nil {
		return fmt.Errorf("failed to count test data: %w", err)
	}
	if count != 1 {
		return fmt.Errorf("unexpected count in transaction: expected 1, got %d", count)
	}
	return nil
}
