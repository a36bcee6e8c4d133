package migration

import (
	"log"

	"gorm.io/gorm"
)

// AddLegacyColumns brings set and card tables created before land targets and
// archetypes existed up to date. Tables that do not exist yet are left for
// AutoMigrate to create.
func AddLegacyColumns(db *gorm.DB) error {
	if err := AddTargetLandColumns(db); err != nil {
		return err
	}
	return AddCardArchetypeColumn(db)
}

// AddTargetLandColumns adds lands_cards and basic_lands_cards to custom_set
func AddTargetLandColumns(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&SetMigration{}) {
		return nil
	}

	log.Println("Running migration: Add land target columns to custom_set table...")

	if !m.HasColumn(&SetMigration{}, "lands_cards") {
		log.Println("Adding lands_cards column to custom_set table...")
		if err := db.Exec("ALTER TABLE custom_set ADD COLUMN lands_cards INTEGER DEFAULT 0").Error; err != nil {
			return err
		}
	}

	if !m.HasColumn(&SetMigration{}, "basic_lands_cards") {
		log.Println("Adding basic_lands_cards column to custom_set table...")
		if err := db.Exec("ALTER TABLE custom_set ADD COLUMN basic_lands_cards INTEGER DEFAULT 0").Error; err != nil {
			return err
		}
	}

	// Rows written without defaults would otherwise scan as NULL
	columns := SetMigration{}.TargetColumns()
	for _, column := range columns {
		if err := db.Exec("UPDATE custom_set SET " + column + " = 0 WHERE " + column + " IS NULL").Error; err != nil {
			return err
		}
	}

	log.Println("Land target columns migration completed successfully!")
	return nil
}

// AddCardArchetypeColumn adds archetype_id to card and backfills rarity
func AddCardArchetypeColumn(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&CardMigration{}) {
		return nil
	}

	if !m.HasColumn(&CardMigration{}, "archetype_id") {
		log.Println("Adding archetype_id column to card table...")
		if err := db.Exec("ALTER TABLE card ADD COLUMN archetype_id INTEGER").Error; err != nil {
			return err
		}
	}

	if err := db.Exec("UPDATE card SET rarity = 'common' WHERE rarity IS NULL OR rarity = ''").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_card_archetype_id ON card(archetype_id)").Error; err != nil {
		return err
	}

	return nil
}

// SetMigration is a helper struct for custom_set column checks
type SetMigration struct {
	LandsCards      int `gorm:"column:lands_cards"`
	BasicLandsCards int `gorm:"column:basic_lands_cards"`
}

// TableName returns the table name for migration checks
func (SetMigration) TableName() string {
	return "custom_set"
}

// TargetColumns lists every target distribution column of custom_set
func (SetMigration) TargetColumns() []string {
	return []string{
		"total_cards",
		"white_cards",
		"blue_cards",
		"black_cards",
		"red_cards",
		"green_cards",
		"colorless_cards",
		"multicolor_cards",
		"lands_cards",
		"basic_lands_cards",
	}
}

// CardMigration is a helper struct for card column checks
type CardMigration struct {
	ArchetypeID *uint `gorm:"column:archetype_id"`
}

// TableName returns the table name for migration checks
func (CardMigration) TableName() string {
	return "card"
}
