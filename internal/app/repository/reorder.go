package repository

import (
	"context"
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/gorm"
)

// OrderUpdate - пара (id, новый display_order) для массовой пересортировки
type OrderUpdate struct {
	ID           uint
	DisplayOrder int
}

// reorderRows применяет пересортировку одной транзакцией: либо все
// строки получают новый порядок, либо ни одна. Частично примененный
// порядок после падения посреди цикла исключен.
func (r *Repository) reorderRows(ctx context.Context, model interface{}, items []OrderUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Model(model).
				Where("id = ?", item.ID).
				Update("display_order", item.DisplayOrder)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("id=%d: %w", item.ID, ErrNotFound)
			}
		}
		return nil
	})
}

func (r *Repository) ReorderProjectTypes(ctx context.Context, items []OrderUpdate) error {
	return r.reorderRows(ctx, &ds.ProjectType{}, items)
}

func (r *Repository) ReorderBaseRates(ctx context.Context, items []OrderUpdate) error {
	return r.reorderRows(ctx, &ds.BaseRate{}, items)
}

func (r *Repository) ReorderFeatures(ctx context.Context, items []OrderUpdate) error {
	return r.reorderRows(ctx, &ds.Feature{}, items)
}

func (r *Repository) ReorderMultiplierGroups(ctx context.Context, items []OrderUpdate) error {
	return r.reorderRows(ctx, &ds.MultiplierGroup{}, items)
}

func (r *Repository) ReorderMultiplierValues(ctx context.Context, items []OrderUpdate) error {
	return r.reorderRows(ctx, &ds.MultiplierValue{}, items)
}
