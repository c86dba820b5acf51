package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"brickbybrick/models"
)

func (s *Store) CreateSubCategory(title, description string, categoryID uint) (*models.SubCategory, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if cnt == 0 {
		return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, categoryID)
	}
	sc := models.SubCategory{Title: title, Description: description, CategoryID: categoryID}
	if err := s.db.Create(&sc).Error; err != nil {
		return nil, fmt.Errorf("create sub-category: %w", err)
	}
	return &sc, nil
}

func (s *Store) GetSubCategory(id uint) (*models.SubCategory, error) {
	var sc models.SubCategory
	if err := s.db.First(&sc, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &sc, nil
}

// ListSubCategories returns sub-categories in insertion order, optionally
// filtered to one owning category (categoryID 0 means no filter).
func (s *Store) ListSubCategories(categoryID uint, skip, limit int) ([]models.SubCategory, error) {
	q := s.db.Model(&models.SubCategory{})
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var subs []models.SubCategory
	if err := q.Order("id").Offset(skip).Limit(limit).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list sub-categories: %w", err)
	}
	return subs, nil
}

func (s *Store) UpdateSubCategory(id uint, title, description string, categoryID uint) (*models.SubCategory, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var sc models.SubCategory
	if err := s.db.First(&sc, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var cnt int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if cnt == 0 {
		return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, categoryID)
	}
	sc.Title = title
	sc.Description = description
	sc.CategoryID = categoryID
	if err := s.db.Save(&sc).Error; err != nil {
		return nil, fmt.Errorf("update sub-category: %w", err)
	}
	return &sc, nil
}

func (s *Store) DeleteSubCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sc models.SubCategory
		if err := tx.First(&sc, id).Error; err != nil {
			return notFoundOr(err)
		}
		n, err := subCategoryRefCount(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferencedError{Entity: "sub-category", Count: n}
		}
		if err := tx.Delete(&sc).Error; err != nil {
			return fmt.Errorf("delete sub-category: %w", err)
		}
		return nil
	})
}
