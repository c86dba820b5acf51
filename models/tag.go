package models

import "time"

// Tag is a free-form label attached to expenses through the expense_tags
// association table.
type Tag struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string `gorm:"size:255;not null;uniqueIndex"`
}
