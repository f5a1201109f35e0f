package main

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/storage"
)

// migrate creates the kv_entries table for the SQL storage backends.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogMode())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	var db *gorm.DB
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err = database.NewPostgres(cfg, zl)
	case config.BackendSQLite:
		db, err = database.NewSQLite(cfg.SQLiteFile(), zl)
	default:
		fmt.Printf("Storage backend %q has no schema, nothing to migrate.\n", cfg.StorageBackend)
		return
	}
	if err != nil {
		zl.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := storage.NewSQL(db).Migrate(); err != nil {
		zl.Fatal("failed to apply migration", "error", err)
	}

	fmt.Println("All migrations applied successfully.")
}
