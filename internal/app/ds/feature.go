package ds

import "time"

// 3. Таблица фич - фиксированная добавка к стоимости
type Feature struct {
	ID           uint    `gorm:"primaryKey"`
	Key          string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	DisplayName  string  `gorm:"type:varchar(200);not null"`
	CostIls      int     `gorm:"not null;default:0"`
	GroupName    *string `gorm:"type:varchar(100);column:group_name"` // Nullable, группировка для отображения
	DisplayOrder int     `gorm:"not null;default:0;index"`
	IsActive     bool    `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
