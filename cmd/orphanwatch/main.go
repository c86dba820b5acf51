// Watches the content directory and reports stored objects that no
// attachment record references. Orphan objects are a tolerated leak, never
// corruption; this tool makes them visible so storage can be cleaned by hand.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brickbybrick/models"
	"brickbybrick/pkg/filestore"
)

var watch = flag.Bool("watch", false, "keep watching after the initial scan")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("connect postgres: ", err)
	}
	base := os.Getenv("UPLOAD_BASE")
	if base == "" {
		base = "uploads"
	}

	scan(db, base)
	if !*watch {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("watcher: ", err)
	}
	defer watcher.Close()
	if err := watcher.Add(base); err != nil {
		log.Fatal("watch ", base, ": ", err)
	}
	log.Printf("watching %s", base)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 {
				continue
			}
			// give the writer a moment to finish the rename
			time.Sleep(500 * time.Millisecond)
			check(db, filepath.Base(ev.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func scan(db *gorm.DB, base string) {
	entries, err := os.ReadDir(base)
	if err != nil {
		log.Fatal("read ", base, ": ", err)
	}
	orphans := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if check(db, entry.Name()) {
			orphans++
		}
	}
	log.Printf("scan complete: %d orphan object(s)", orphans)
}

// check reports whether name is an orphan. Temp files and generated
// thumbnails are skipped; they never have records of their own.
func check(db *gorm.DB, name string) bool {
	if strings.HasPrefix(name, ".") || filestore.IsThumbnail(name) {
		return false
	}
	var cnt int64
	if err := db.Model(&models.ExpenseAttachment{}).Where("file_path = ?", name).Count(&cnt).Error; err != nil {
		log.Printf("lookup %s: %v", name, err)
		return false
	}
	if cnt == 0 {
		log.Printf("orphan object: %s", name)
		return true
	}
	return false
}
