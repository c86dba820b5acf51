package models

import "time"

// Category is a top-level expense classification. Titles are unique across
// the table. A category owns its sub-categories; removing a category removes
// them too (the cascade lives in the store, not in constraint tags).
type Category struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"size:255;not null;uniqueIndex"`
	Description string `gorm:"size:512"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID"`
}
