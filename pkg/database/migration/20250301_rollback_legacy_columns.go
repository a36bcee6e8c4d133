package migration

import (
	"log"

	"gorm.io/gorm"
)

// RollbackTargetLandColumns removes the land target columns from custom_set.
// It can be used to hand a database back to a release that predates them.
func RollbackTargetLandColumns(db *gorm.DB) error {
	log.Println("Running rollback: Remove land target columns from custom_set table...")

	m := db.Migrator()
	if !m.HasTable(&SetMigration{}) {
		log.Println("custom_set table not found, nothing to roll back")
		return nil
	}

	if m.HasColumn(&SetMigration{}, "lands_cards") {
		log.Println("Dropping lands_cards column from custom_set table...")
		if err := m.DropColumn(&SetMigration{}, "lands_cards"); err != nil {
			return err
		}
	}

	if m.HasColumn(&SetMigration{}, "basic_lands_cards") {
		log.Println("Dropping basic_lands_cards column from custom_set table...")
		if err := m.DropColumn(&SetMigration{}, "basic_lands_cards"); err != nil {
			return err
		}
	}

	if err := db.Exec("DROP INDEX IF EXISTS idx_card_archetype_id").Error; err != nil {
		log.Printf("Warning: Failed to drop idx_card_archetype_id: %v", err)
	}

	log.Println("Land target columns rollback completed successfully!")
	return nil
}
