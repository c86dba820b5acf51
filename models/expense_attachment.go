package models

import "time"

// ExpenseAttachment pairs a stored binary object with an expense. Filename is
// what the user uploaded; FilePath is the generated name of the object in the
// content directory and is unique per stored object. FileSize is the byte
// count actually written.
type ExpenseAttachment struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpenseID  uint   `gorm:"index;not null"`
	Filename   string `gorm:"size:255;not null"`
	FilePath   string `gorm:"size:512;not null;uniqueIndex"`
	FileSize   int64  `gorm:"not null"`
	UploadDate time.Time

	Expense Expense `gorm:"foreignKey:ExpenseID;references:ID"`
}
