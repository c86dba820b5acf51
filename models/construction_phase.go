package models

import "time"

// ConstructionPhase marks which stage of the build an expense belongs to
// (planning, foundation, structure, ...). Titles are unique.
type ConstructionPhase struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"size:255;not null;uniqueIndex"`
	Description string `gorm:"size:512"`
}
