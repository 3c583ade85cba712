package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с базовыми ставками по сегментам клиентов

func (r *Repository) GetBaseRates(ctx context.Context) ([]ds.BaseRate, error) {
	var baseRates []ds.BaseRate
	err := r.db.WithContext(ctx).Order("display_order ASC").Find(&baseRates).Error
	return baseRates, err
}

func (r *Repository) GetBaseRateByID(ctx context.Context, id uint) (*ds.BaseRate, error) {
	var baseRate ds.BaseRate
	err := r.db.WithContext(ctx).First(&baseRate, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("базовая ставка id=%d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &baseRate, nil
}

func (r *Repository) CreateBaseRate(ctx context.Context, baseRate *ds.BaseRate) error {
	return r.db.WithContext(ctx).Create(baseRate).Error
}

func (r *Repository) UpdateBaseRate(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&ds.BaseRate{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("базовая ставка id=%d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteBaseRate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&ds.BaseRate{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("базовая ставка id=%d: %w", id, ErrNotFound)
	}
	return nil
}
