package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с фичами

func (r *Repository) GetFeatures(ctx context.Context) ([]ds.Feature, error) {
	var features []ds.Feature
	err := r.db.WithContext(ctx).Order("display_order ASC").Find(&features).Error
	return features, err
}

func (r *Repository) GetFeatureByID(ctx context.Context, id uint) (*ds.Feature, error) {
	var feature ds.Feature
	err := r.db.WithContext(ctx).First(&feature, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("фича id=%d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &feature, nil
}

func (r *Repository) CreateFeature(ctx context.Context, feature *ds.Feature) error {
	return r.db.WithContext(ctx).Create(feature).Error
}

func (r *Repository) UpdateFeature(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&ds.Feature{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("фича id=%d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteFeature(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&ds.Feature{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("фича id=%d: %w", id, ErrNotFound)
	}
	return nil
}
