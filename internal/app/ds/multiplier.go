package ds

import "time"

// 4. Таблица групп множителей - ось выбора (например, срочность)
type MultiplierGroup struct {
	ID           uint   `gorm:"primaryKey"`
	Key          string `gorm:"type:varchar(100);uniqueIndex;not null"`
	DisplayName  string `gorm:"type:varchar(200);not null"`
	DisplayOrder int    `gorm:"not null;default:0;index"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// 5. Таблица значений множителей - варианты внутри группы
type MultiplierValue struct {
	ID           uint   `gorm:"primaryKey"`
	GroupKey     string `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_group_option"`
	OptionKey    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_group_option"`
	Value        string `gorm:"type:decimal(8,3);not null;default:1"` // десятичное число хранится строкой
	IsFixed      bool   `gorm:"not null;default:false"`               // нередактируемый базовый вариант
	DisplayName  string `gorm:"type:varchar(200);not null"`
	DisplayOrder int    `gorm:"not null;default:0;index"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
