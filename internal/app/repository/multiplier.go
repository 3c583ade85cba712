package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с группами множителей и их значениями

func (r *Repository) GetMultiplierGroups(ctx context.Context) ([]ds.MultiplierGroup, error) {
	var groups []ds.MultiplierGroup
	err := r.db.WithContext(ctx).Order("display_order ASC").Find(&groups).Error
	return groups, err
}

func (r *Repository) GetMultiplierGroupByID(ctx context.Context, id uint) (*ds.MultiplierGroup, error) {
	var group ds.MultiplierGroup
	err := r.db.WithContext(ctx).First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("группа множителей id=%d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &group, nil
}

func (r *Repository) CreateMultiplierGroup(ctx context.Context, group *ds.MultiplierGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *Repository) UpdateMultiplierGroup(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&ds.MultiplierGroup{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("группа множителей id=%d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteMultiplierGroup скрывает группу вместе с ее значениями
func (r *Repository) DeleteMultiplierGroup(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group ds.MultiplierGroup
		if err := tx.First(&group, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("группа множителей id=%d: %w", id, ErrNotFound)
			}
			return err
		}
		if err := tx.Model(&ds.MultiplierGroup{}).
			Where("id = ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&ds.MultiplierValue{}).
			Where("group_key = ?", group.Key).
			Update("is_active", false).Error
	})
}

func (r *Repository) GetMultiplierValues(ctx context.Context, groupKey string) ([]ds.MultiplierValue, error) {
	var values []ds.MultiplierValue
	query := r.db.WithContext(ctx).Order("display_order ASC")
	if groupKey != "" {
		query = query.Where("group_key = ?", groupKey)
	}
	err := query.Find(&values).Error
	return values, err
}

func (r *Repository) CreateMultiplierValue(ctx context.Context, value *ds.MultiplierValue) error {
	return r.db.WithContext(ctx).Create(value).Error
}

func (r *Repository) UpdateMultiplierValue(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&ds.MultiplierValue{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("значение множителя id=%d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteMultiplierValue(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&ds.MultiplierValue{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("значение множителя id=%d: %w", id, ErrNotFound)
	}
	return nil
}
