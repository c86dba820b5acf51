package store

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"brickbybrick/models"
)

// ExpenseInput is the flat payload the assembler turns into an expense
// aggregate. TagIDs is authoritative on update: the stored tag set always
// becomes exactly the resolved set, empty included.
type ExpenseInput struct {
	Title         string
	Amount        float64
	Description   string
	PurchaseDate  *time.Time
	Notes         string
	Vendor        string
	CategoryID    uint
	SubCategoryID *uint
	PhaseID       *uint
	TagIDs        []uint
}

func (s *Store) validateExpenseInput(tx *gorm.DB, in ExpenseInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	var cnt int64
	if err := tx.Model(&models.Category{}).Where("id = ?", in.CategoryID).Count(&cnt).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if cnt == 0 {
		return fmt.Errorf("%w: category %d does not exist", ErrValidation, in.CategoryID)
	}
	if in.SubCategoryID != nil {
		if err := tx.Model(&models.SubCategory{}).Where("id = ?", *in.SubCategoryID).Count(&cnt).Error; err != nil {
			return fmt.Errorf("check sub-category: %w", err)
		}
		if cnt == 0 {
			return fmt.Errorf("%w: sub-category %d does not exist", ErrValidation, *in.SubCategoryID)
		}
	}
	if in.PhaseID != nil {
		if err := tx.Model(&models.ConstructionPhase{}).Where("id = ?", *in.PhaseID).Count(&cnt).Error; err != nil {
			return fmt.Errorf("check phase: %w", err)
		}
		if cnt == 0 {
			return fmt.Errorf("%w: phase %d does not exist", ErrValidation, *in.PhaseID)
		}
	}
	return nil
}

// resolveTags maps the requested tag ids to existing rows. Ids that resolve
// to nothing are dropped, not rejected; the caller gets whatever subset
// exists.
func resolveTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	return tags, nil
}

func replaceTagLinks(tx *gorm.DB, expenseID uint, tags []models.Tag) error {
	if err := tx.Where("expense_id = ?", expenseID).Delete(&models.ExpenseTag{}).Error; err != nil {
		return fmt.Errorf("clear tag links: %w", err)
	}
	for _, t := range tags {
		link := models.ExpenseTag{ExpenseID: expenseID, TagID: t.ID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("link tag %d: %w", t.ID, err)
		}
	}
	return nil
}

// CreateExpense persists the expense and its tag links as one unit.
// CreationDate is server-assigned; PurchaseDate falls back to it.
func (s *Store) CreateExpense(in ExpenseInput) (*models.Expense, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validateExpenseInput(tx, in); err != nil {
			return err
		}
		tags, err := resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		created := today()
		purchase := created
		if in.PurchaseDate != nil {
			purchase = *in.PurchaseDate
		}
		e := models.Expense{
			Title:         in.Title,
			Amount:        in.Amount,
			Description:   in.Description,
			CreationDate:  created,
			PurchaseDate:  purchase,
			Notes:         in.Notes,
			Vendor:        in.Vendor,
			CategoryID:    in.CategoryID,
			SubCategoryID: in.SubCategoryID,
			PhaseID:       in.PhaseID,
		}
		if err := tx.Create(&e).Error; err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		if err := replaceTagLinks(tx, e.ID, tags); err != nil {
			return err
		}
		id = e.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetExpense(id)
}

func (s *Store) GetExpense(id uint) (*models.Expense, error) {
	var e models.Expense
	err := s.db.
		Preload("Category.SubCategories").
		Preload("SubCategory").
		Preload("Phase").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Attachments").
		First(&e, id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &e, nil
}

func (s *Store) ListExpenses(skip, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.
		Preload("Category.SubCategories").
		Preload("SubCategory").
		Preload("Phase").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Attachments").
		Order("id").Offset(skip).Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense overwrites every mutable field from the payload and replaces
// the tag set with the resolved one. CreationDate is the only field that
// survives untouched. An omitted purchase date keeps the original creation
// date, mirroring the create default.
func (s *Store) UpdateExpense(id uint, in ExpenseInput) (*models.Expense, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var e models.Expense
		if err := tx.First(&e, id).Error; err != nil {
			return notFoundOr(err)
		}
		if err := s.validateExpenseInput(tx, in); err != nil {
			return err
		}
		tags, err := resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		e.Title = in.Title
		e.Amount = in.Amount
		e.Description = in.Description
		e.Notes = in.Notes
		e.Vendor = in.Vendor
		e.CategoryID = in.CategoryID
		e.SubCategoryID = in.SubCategoryID
		e.PhaseID = in.PhaseID
		if in.PurchaseDate != nil {
			e.PurchaseDate = *in.PurchaseDate
		} else {
			e.PurchaseDate = e.CreationDate
		}
		if err := tx.Save(&e).Error; err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		return replaceTagLinks(tx, e.ID, tags)
	})
	if err != nil {
		return nil, err
	}
	return s.GetExpense(id)
}

// DeleteExpense removes the aggregate: attachment records, tag links, then
// the expense itself, in one transaction. Backing files are removed only
// after the commit; if the transaction fails the files stay put, and if a
// file removal fails the leak is the tolerated kind (object without record).
func (s *Store) DeleteExpense(id uint) error {
	var locators []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var e models.Expense
		if err := tx.First(&e, id).Error; err != nil {
			return notFoundOr(err)
		}
		var atts []models.ExpenseAttachment
		if err := tx.Where("expense_id = ?", id).Find(&atts).Error; err != nil {
			return fmt.Errorf("load attachments: %w", err)
		}
		for _, a := range atts {
			locators = append(locators, a.FilePath)
		}
		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseAttachment{}).Error; err != nil {
			return fmt.Errorf("cascade attachments: %w", err)
		}
		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseTag{}).Error; err != nil {
			return fmt.Errorf("cascade tag links: %w", err)
		}
		if err := tx.Delete(&e).Error; err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, loc := range locators {
		_ = s.files.Remove(loc)
		s.files.RemoveThumbnail(loc)
	}
	return nil
}
