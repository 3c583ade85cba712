package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	// ErrNotFound — запись не найдена (или не проходит фильтры активности)
	ErrNotFound = errors.New("запись не найдена")
	// ErrDataSourceUnavailable — хранилище конфигурации недоступно
	ErrDataSourceUnavailable = errors.New("хранилище конфигурации цен недоступно")
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.ProjectType{},
		&ds.BaseRate{},
		&ds.Feature{},
		&ds.MultiplierGroup{},
		&ds.MultiplierValue{},
		&ds.MetaSetting{},
		&ds.CalculatorSetting{},
		&ds.PricingDiscount{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// NewWithDB оборачивает уже открытое соединение (используется в тестах)
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// activeOrdered — общий фильтр конфигурационных таблиц:
// только активные записи, по возрастанию display_order
func (r *Repository) activeOrdered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC")
}

// parseDecimal разбирает десятичную строку; мусор превращается в 0,
// расчет никогда не падает из-за кривого значения
func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
