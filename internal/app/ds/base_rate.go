package ds

import "time"

// 2. Таблица базовых ставок - уточнение цены типа проекта по сегменту клиента
type BaseRate struct {
	ID             uint    `gorm:"primaryKey"`
	ProjectTypeKey string  `gorm:"type:varchar(100);not null;index"`
	ClientTypeKey  *string `gorm:"type:varchar(100)"` // NULL = ставка без привязки к сегменту
	BaseRateIls    int     `gorm:"not null;default:0"`
	DisplayOrder   int     `gorm:"not null;default:0;index"`
	IsActive       bool    `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
