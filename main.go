package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"brickbybrick/pkg/filestore"
	"brickbybrick/store"
)

func main() {
	// Auto-load ./.env if present before reading vars
	_ = godotenv.Load()
	cfg := loadConfig()

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	files, err := filestore.New(cfg.UploadBase)
	if err != nil {
		log.Fatal(err)
	}
	st := store.New(db, files)

	// Lightweight migrate command: `./brickbybrick migrate` runs the schema
	// migration and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := store.AutoMigrate(db); err != nil {
			log.Fatal(err)
		}
		fmt.Println("migration completed")
		return
	}

	r := gin.Default()
	srv := &server{store: st, files: files}
	setupRoutes(r, srv)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
