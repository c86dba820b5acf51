package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"brickbybrick/models"
)

func (s *Store) CreateTag(title string) (*models.Tag, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.Tag{}).Where("title = ?", title).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check tag title: %w", err)
	}
	if cnt > 0 {
		return nil, fmt.Errorf("%w: tag title %q already exists", ErrConflict, title)
	}
	t := models.Tag{Title: title}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &t, nil
}

func (s *Store) GetTag(id uint) (*models.Tag, error) {
	var t models.Tag
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (s *Store) ListTags(skip, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("id").Offset(skip).Limit(limit).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *Store) UpdateTag(id uint, title string) (*models.Tag, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var t models.Tag
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var cnt int64
	if err := s.db.Model(&models.Tag{}).Where("title = ? AND id <> ?", title, id).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check tag title: %w", err)
	}
	if cnt > 0 {
		return nil, fmt.Errorf("%w: tag title %q already exists", ErrConflict, title)
	}
	t.Title = title
	if err := s.db.Save(&t).Error; err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return &t, nil
}

func (s *Store) DeleteTag(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Tag
		if err := tx.First(&t, id).Error; err != nil {
			return notFoundOr(err)
		}
		n, err := tagRefCount(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferencedError{Entity: "tag", Count: n}
		}
		if err := tx.Delete(&t).Error; err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
}
