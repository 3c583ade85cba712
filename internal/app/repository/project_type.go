package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с типами проектов

// GetProjectTypes возвращает все типы проектов для админки (включая скрытые)
func (r *Repository) GetProjectTypes(ctx context.Context) ([]ds.ProjectType, error) {
	var projectTypes []ds.ProjectType
	err := r.db.WithContext(ctx).Order("display_order ASC").Find(&projectTypes).Error
	return projectTypes, err
}

func (r *Repository) GetProjectTypeByID(ctx context.Context, id uint) (*ds.ProjectType, error) {
	var projectType ds.ProjectType
	err := r.db.WithContext(ctx).First(&projectType, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("тип проекта id=%d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &projectType, nil
}

func (r *Repository) GetProjectTypeByKey(ctx context.Context, key string) (*ds.ProjectType, error) {
	var projectType ds.ProjectType
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&projectType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("тип проекта %q: %w", key, ErrNotFound)
		}
		return nil, err
	}
	return &projectType, nil
}

func (r *Repository) CreateProjectType(ctx context.Context, projectType *ds.ProjectType) error {
	return r.db.WithContext(ctx).Create(projectType).Error
}

func (r *Repository) UpdateProjectType(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&ds.ProjectType{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("тип проекта id=%d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteProjectType - логическое удаление: запись пропадает из модели,
// но остается в базе
func (r *Repository) DeleteProjectType(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&ds.ProjectType{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("тип проекта id=%d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateProjectTypeImage сохраняет имя файла изображения в MinIO
func (r *Repository) UpdateProjectTypeImage(ctx context.Context, id uint, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&ds.ProjectType{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

func (r *Repository) DeleteProjectTypeImage(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&ds.ProjectType{}).
		Where("id = ?", id).
		Update("image_url", nil).Error
}
