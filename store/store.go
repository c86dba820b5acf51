// Package store is the relational core of the tracker: entity CRUD, the
// delete-time reference guard, expense aggregate assembly, and the pairing of
// attachment records with objects in the content directory.
package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"brickbybrick/models"
	"brickbybrick/pkg/filestore"
)

// Store holds the injected database handle and content directory. Every
// mutating operation opens its own transaction so partial states are never
// visible outside the call.
type Store struct {
	db    *gorm.DB
	files *filestore.LocalDir
}

func New(db *gorm.DB, files *filestore.LocalDir) *Store {
	return &Store{db: db, files: files}
}

// AutoMigrate creates or updates the schema for all tracker models. Shared by
// the server, the seeder and the tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.SubCategory{},
		&models.ConstructionPhase{},
		&models.Tag{},
		&models.Expense{},
		&models.ExpenseTag{},
		&models.ExpenseAttachment{},
	)
}

// today truncates the clock to a calendar date; creation_date, purchase_date
// and upload_date are date-valued.
func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// notFoundOr maps gorm's record-not-found onto the store taxonomy and wraps
// anything else untouched.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
