package store

import (
	"fmt"
	"io"
	"strings"

	"brickbybrick/models"
	"brickbybrick/pkg/filestore"
)

// CreateAttachment stores the binary first and inserts the record only after
// the write succeeds; a failed write leaves no record, a failed insert rolls
// the object back. The persisted size is the byte count actually written, not
// the size the client declared.
func (s *Store) CreateAttachment(expenseID uint, filename string, r io.Reader) (*models.ExpenseAttachment, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.Expense{}).Where("id = ?", expenseID).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check expense: %w", err)
	}
	if cnt == 0 {
		return nil, fmt.Errorf("%w: expense %d", ErrNotFound, expenseID)
	}

	locator, size, err := s.files.Write(filestore.StorageName(filename), r)
	if err != nil {
		return nil, fmt.Errorf("store attachment object: %w", err)
	}
	att := models.ExpenseAttachment{
		ExpenseID:  expenseID,
		Filename:   filename,
		FilePath:   locator,
		FileSize:   size,
		UploadDate: today(),
	}
	if err := s.db.Create(&att).Error; err != nil {
		_ = s.files.Remove(locator)
		return nil, fmt.Errorf("create attachment record: %w", err)
	}
	// preview is best effort; the object is already live
	_ = s.files.Thumbnail(locator)
	return &att, nil
}

func (s *Store) GetAttachment(id uint) (*models.ExpenseAttachment, error) {
	var att models.ExpenseAttachment
	if err := s.db.First(&att, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &att, nil
}

func (s *Store) ListAttachments(expenseID uint) ([]models.ExpenseAttachment, error) {
	var cnt int64
	if err := s.db.Model(&models.Expense{}).Where("id = ?", expenseID).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check expense: %w", err)
	}
	if cnt == 0 {
		return nil, fmt.Errorf("%w: expense %d", ErrNotFound, expenseID)
	}
	var atts []models.ExpenseAttachment
	if err := s.db.Where("expense_id = ?", expenseID).Order("id").Find(&atts).Error; err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return atts, nil
}

// DeleteAttachment checks the record, removes the object, then the record. A
// missing object is tolerated; the record reflects attachment intent and is
// removed regardless of whether storage was already cleaned externally.
func (s *Store) DeleteAttachment(id uint) error {
	var att models.ExpenseAttachment
	if err := s.db.First(&att, id).Error; err != nil {
		return notFoundOr(err)
	}
	if err := s.files.Remove(att.FilePath); err != nil {
		return err
	}
	s.files.RemoveThumbnail(att.FilePath)
	if err := s.db.Delete(&att).Error; err != nil {
		return fmt.Errorf("delete attachment record: %w", err)
	}
	return nil
}
