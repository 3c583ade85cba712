package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с промокодами

// GetActivePricingDiscountByCode ищет промокод по коду (без учета регистра),
// проверяя флаг активности и окно действия. Лимит использований здесь
// НЕ проверяется: исчерпание контролируется в момент списания
// (TryIncrementDiscountUsage), а не при поиске.
func (r *Repository) GetActivePricingDiscountByCode(ctx context.Context, code string) (*ds.PricingDiscount, error) {
	now := time.Now()

	var discount ds.PricingDiscount
	err := r.db.WithContext(ctx).
		Where("LOWER(code) = LOWER(?)", code).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("промокод %q: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return &discount, nil
}

// IncrementDiscountUsage увеличивает счетчик использований одним
// арифметическим UPDATE в базе (без read-modify-write в приложении)
func (r *Repository) IncrementDiscountUsage(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Exec("UPDATE pricing_discounts SET used_count = used_count + 1 WHERE id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("промокод id=%d: %w", id, ErrNotFound)
	}
	return nil
}

// TryIncrementDiscountUsage - атомарный условный инкремент: счетчик
// увеличивается только пока лимит не исчерпан. Возвращает false когда
// лимит достигнут; два конкурентных запроса на границе max_uses не
// смогут списать код дважды.
func (r *Repository) TryIncrementDiscountUsage(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Exec("UPDATE pricing_discounts SET used_count = used_count + 1 WHERE id = ? AND (max_uses IS NULL OR used_count < max_uses)", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CRUD для админки

func (r *Repository) GetPricingDiscounts(ctx context.Context) ([]ds.PricingDiscount, error) {
	var discounts []ds.PricingDiscount
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&discounts).Error
	return discounts, err
}

func (r *Repository) GetPricingDiscountByID(ctx context.Context, id uint) (*ds.PricingDiscount, error) {
	var discount ds.PricingDiscount
	err := r.db.WithContext(ctx).First(&discount, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("промокод id=%d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &discount, nil
}

func (r *Repository) CreatePricingDiscount(ctx context.Context, discount *ds.PricingDiscount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *Repository) UpdatePricingDiscount(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&ds.PricingDiscount{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("промокод id=%d: %w", id, ErrNotFound)
	}
	return nil
}

// DeletePricingDiscount - логическое удаление через флаг активности
func (r *Repository) DeletePricingDiscount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&ds.PricingDiscount{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("промокод id=%d: %w", id, ErrNotFound)
	}
	return nil
}
