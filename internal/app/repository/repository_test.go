package repository

import (
	"testing"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo поднимает репозиторий на in-memory SQLite
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// In-memory база живет в одном соединении
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

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
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewWithDB(db)
}

func mustCreate(t *testing.T, r *Repository, value interface{}) {
	t.Helper()
	if err := r.db.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}

func intPtr(n int) *int { return &n }
