package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"brickbybrick/models"
)

func (s *Store) CreateCategory(title, description string) (*models.Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.Category{}).Where("title = ?", title).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check category title: %w", err)
	}
	if cnt > 0 {
		return nil, fmt.Errorf("%w: category title %q already exists", ErrConflict, title)
	}
	c := models.Category{Title: title, Description: description}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (s *Store) GetCategory(id uint) (*models.Category, error) {
	var c models.Category
	if err := s.db.Preload("SubCategories").First(&c, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

// ListCategories returns categories in insertion order. A skip past the end
// yields an empty slice.
func (s *Store) ListCategories(skip, limit int) ([]models.Category, error) {
	var cats []models.Category
	err := s.db.Preload("SubCategories").Order("id").Offset(skip).Limit(limit).Find(&cats).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// UpdateCategory replaces both mutable fields. Relationships are untouched.
func (s *Store) UpdateCategory(id uint, title, description string) (*models.Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var c models.Category
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var cnt int64
	if err := s.db.Model(&models.Category{}).Where("title = ? AND id <> ?", title, id).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check category title: %w", err)
	}
	if cnt > 0 {
		return nil, fmt.Errorf("%w: category title %q already exists", ErrConflict, title)
	}
	c.Title = title
	c.Description = description
	if err := s.db.Save(&c).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetCategory(id)
}

// DeleteCategory removes the category and all of its sub-categories once the
// reference guard passes. Guard check, cascade and delete share one
// transaction; a blocked delete changes nothing.
func (s *Store) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var c models.Category
		if err := tx.First(&c, id).Error; err != nil {
			return notFoundOr(err)
		}
		n, err := categoryRefCount(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferencedError{Entity: "category", Count: n}
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.SubCategory{}).Error; err != nil {
			return fmt.Errorf("cascade sub-categories: %w", err)
		}
		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
