package ds

import "time"

// 1. Таблица типов проектов - базовая ставка по типу
type ProjectType struct {
	ID           uint    `gorm:"primaryKey"`
	Key          string  `gorm:"type:varchar(100);uniqueIndex;not null"` // слаг типа проекта
	DisplayName  string  `gorm:"type:varchar(200);not null"`
	BaseRateIls  int     `gorm:"not null;default:0"` // базовая стоимость в шекелях
	ImageURL     *string `gorm:"type:varchar(255)"`  // Nullable, картинка в MinIO
	DisplayOrder int     `gorm:"not null;default:0;index"`
	IsActive     bool    `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
