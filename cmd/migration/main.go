package main

import (
	"flag"
	"log"
	"os"

	"github.com/latoulicious/setforge/internal/config"
	"github.com/latoulicious/setforge/pkg/database"
	"github.com/latoulicious/setforge/pkg/database/migration"
	"github.com/latoulicious/setforge/tools"
)

func main() {
	// Parse the command line arguments
	migrateFlag := flag.Bool("migrate", true, "Run the migrations")
	resetFlag := flag.Bool("reset", false, "Drop every table before migrating")
	rollbackFlag := flag.Bool("rollback", false, "Remove the land target columns and exit")
	checkFlag := flag.Bool("check", false, "Run the connectivity check and exit")
	configDir := flag.String("config", ".", "Directory holding config/ and .env")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *checkFlag {
		if _, err := tools.DBCheck(cfg.Database.URL, os.Stdout); err != nil {
			log.Fatalf("Database check failed: %v", err)
		}
		return
	}

	db, err := database.NewGormDB(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL database: %v", err)
	}
	defer sqlDB.Close()

	log.Printf("Connected to %s database", database.DriverFor(cfg.Database.URL))

	if *rollbackFlag {
		if err := migration.RollbackTargetLandColumns(db); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		return
	}

	// Reset Flag
	if *resetFlag {
		log.Println("Resetting database...")
		if err := migration.DropTables(db); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Database reset successfully")
	}

	// Schema Flag
	if *migrateFlag || *resetFlag {
		if err := migration.RunMigration(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}
}
