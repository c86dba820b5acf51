package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"brickbybrick/models"
)

func (s *Store) CreatePhase(title, description string) (*models.ConstructionPhase, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.ConstructionPhase{}).Where("title = ?", title).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check phase title: %w", err)
	}
	if cnt > 0 {
		return nil, fmt.Errorf("%w: phase title %q already exists", ErrConflict, title)
	}
	p := models.ConstructionPhase{Title: title, Description: description}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create phase: %w", err)
	}
	return &p, nil
}

func (s *Store) GetPhase(id uint) (*models.ConstructionPhase, error) {
	var p models.ConstructionPhase
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (s *Store) ListPhases(skip, limit int) ([]models.ConstructionPhase, error) {
	var phases []models.ConstructionPhase
	if err := s.db.Order("id").Offset(skip).Limit(limit).Find(&phases).Error; err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	return phases, nil
}

func (s *Store) UpdatePhase(id uint, title, description string) (*models.ConstructionPhase, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	var p models.ConstructionPhase
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var cnt int64
	if err := s.db.Model(&models.ConstructionPhase{}).Where("title = ? AND id <> ?", title, id).Count(&cnt).Error; err != nil {
		return nil, fmt.Errorf("check phase title: %w", err)
	}
	if cnt > 0 {
		return nil, fmt.Errorf("%w: phase title %q already exists", ErrConflict, title)
	}
	p.Title = title
	p.Description = description
	if err := s.db.Save(&p).Error; err != nil {
		return nil, fmt.Errorf("update phase: %w", err)
	}
	return &p, nil
}

func (s *Store) DeletePhase(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.ConstructionPhase
		if err := tx.First(&p, id).Error; err != nil {
			return notFoundOr(err)
		}
		n, err := phaseRefCount(tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferencedError{Entity: "phase", Count: n}
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete phase: %w", err)
		}
		return nil
	})
}
