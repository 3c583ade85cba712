package ds

import "time"

// 6. Таблица meta-настроек - глобальные константы расчета (ключ -> JSON-значение)
// Известные ключи: pageCostPerPage, rangePercent, defaultCurrency, projectMinimums.
// Значение хранится обернутым в {"value": X}, кроме projectMinimums (сырой объект).
type MetaSetting struct {
	ID           uint   `gorm:"primaryKey"`
	Key          string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Value        JSON   `gorm:"type:jsonb"`
	DisplayOrder int    `gorm:"not null;default:0;index"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
