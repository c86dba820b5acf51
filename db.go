package main

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brickbybrick/store"
)

// openDB connects to Postgres and, unless disabled, brings the schema up to
// date. The handle is returned to the caller; nothing here is global.
func openDB(cfg Config) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; this server requires a Postgres DSN in DB_DSN")
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.AutoMigrate {
		if err := store.AutoMigrate(db); err != nil {
			// permission errors on managed databases are common; the schema
			// may already be in place
			log.Printf("migration warning: %v", err)
		}
	}
	return db, nil
}
