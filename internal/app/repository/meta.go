package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для работы с meta-настройками

func (r *Repository) GetMetaSettings(ctx context.Context) ([]ds.MetaSetting, error) {
	var settings []ds.MetaSetting
	err := r.db.WithContext(ctx).Order("display_order ASC").Find(&settings).Error
	return settings, err
}

func (r *Repository) GetMetaSettingByKey(ctx context.Context, key string) (*ds.MetaSetting, error) {
	var setting ds.MetaSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("meta-настройка %q: %w", key, ErrNotFound)
		}
		return nil, err
	}
	return &setting, nil
}

// UpsertMetaSetting создает или обновляет настройку по ключу
func (r *Repository) UpsertMetaSetting(ctx context.Context, setting *ds.MetaSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "display_order", "is_active", "updated_at"}),
		}).
		Create(setting).Error
}

func (r *Repository) DeleteMetaSetting(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).
		Model(&ds.MetaSetting{}).
		Where("key = ?", key).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("meta-настройка %q: %w", key, ErrNotFound)
	}
	return nil
}
