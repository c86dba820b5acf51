package models

import "time"

// SubCategory refines a Category. Titles are not globally unique; two
// categories may both have a "Fencing" sub-category.
type SubCategory struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:512"`
	CategoryID  uint   `gorm:"index;not null"`

	Category Category `gorm:"foreignKey:CategoryID;references:ID"`
}
