package migration

import (
	"fmt"
	"log"

	"github.com/latoulicious/setforge/pkg/database/models"
	"gorm.io/gorm"
)

// RunMigration upgrades databases written by older releases and then
// auto-migrates every model
func RunMigration(db *gorm.DB) error {
	log.Println("Starting migrations...")

	if err := AddLegacyColumns(db); err != nil {
		return fmt.Errorf("legacy column migration: %w", err)
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&models.Set{},
		&models.Archetype{},
		&models.Card{},
		&models.AppLog{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	log.Println("Migrations completed successfully!")
	return nil
}

// Tables lists the tables RunMigration manages
func Tables() []string {
	return []string{
		models.Set{}.TableName(),
		models.Archetype{}.TableName(),
		models.Card{}.TableName(),
		models.AppLog{}.TableName(),
	}
}

// DropTables drops every managed table, children first
func DropTables(db *gorm.DB) error {
	order := []string{
		models.Card{}.TableName(),
		models.Archetype{}.TableName(),
		models.Set{}.TableName(),
		models.AppLog{}.TableName(),
	}
	for _, table := range order {
		log.Printf("Dropping table %s...", table)
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
