package store

import (
	"fmt"

	"gorm.io/gorm"

	"brickbybrick/models"
)

// Reference counting for delete-time guards. Each helper runs inside the
// caller's transaction so the count and the delete see the same state.

// categoryRefCount counts expenses pointing at the category, directly or
// through one of its sub-categories. An expense linked to a sub-category also
// carries the parent category id, but the sub-category side is counted anyway
// so the guard does not depend on that invariant holding in old data.
func categoryRefCount(tx *gorm.DB, id uint) (int64, error) {
	sub := tx.Model(&models.SubCategory{}).Select("id").Where("category_id = ?", id)
	var n int64
	err := tx.Model(&models.Expense{}).
		Where("category_id = ? OR sub_category_id IN (?)", id, sub).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count category references: %w", err)
	}
	return n, nil
}

func subCategoryRefCount(tx *gorm.DB, id uint) (int64, error) {
	var n int64
	err := tx.Model(&models.Expense{}).Where("sub_category_id = ?", id).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count sub-category references: %w", err)
	}
	return n, nil
}

func phaseRefCount(tx *gorm.DB, id uint) (int64, error) {
	var n int64
	err := tx.Model(&models.Expense{}).Where("phase_id = ?", id).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count phase references: %w", err)
	}
	return n, nil
}

// tagRefCount counts association rows; the pair is unique, so this equals the
// number of expenses carrying the tag.
func tagRefCount(tx *gorm.DB, id uint) (int64, error) {
	var n int64
	err := tx.Model(&models.ExpenseTag{}).Where("tag_id = ?", id).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count tag references: %w", err)
	}
	return n, nil
}
