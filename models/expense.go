package models

import "time"

// Expense is the ledger entry. CreationDate is assigned once when the record
// is created and never changes; PurchaseDate falls back to it when the caller
// omits one. Tag links and attachments belong to the expense and are removed
// with it.
type Expense struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Title        string    `gorm:"size:255;not null"`
	Amount       float64   `gorm:"not null"`
	Description  string    `gorm:"size:512"`
	CreationDate time.Time `gorm:"not null"`
	PurchaseDate time.Time `gorm:"not null"`
	Notes        string    `gorm:"type:text"`
	Vendor       string    `gorm:"size:255"`

	CategoryID    uint  `gorm:"index;not null"`
	SubCategoryID *uint `gorm:"index"`
	PhaseID       *uint `gorm:"index"`

	Category    Category            `gorm:"foreignKey:CategoryID;references:ID"`
	SubCategory *SubCategory        `gorm:"foreignKey:SubCategoryID;references:ID"`
	Phase       *ConstructionPhase  `gorm:"foreignKey:PhaseID;references:ID"`
	Tags        []Tag               `gorm:"many2many:expense_tags"`
	Attachments []ExpenseAttachment `gorm:"foreignKey:ExpenseID"`
}

// ExpenseTag is the expense<->tag association row. The store writes these
// explicitly instead of going through association helpers so the replacement
// semantics stay visible in one place.
type ExpenseTag struct {
	ExpenseID uint `gorm:"primaryKey"`
	TagID     uint `gorm:"primaryKey"`
}

func (ExpenseTag) TableName() string {
	return "expense_tags"
}
