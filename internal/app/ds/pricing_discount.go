package ds

import "time"

// 8. Таблица промокодов
type PricingDiscount struct {
	ID           uint       `gorm:"primaryKey"`
	Code         string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	DiscountType string     `gorm:"type:varchar(20);not null"`     // percent, fixed
	Amount       string     `gorm:"type:decimal(12,2);not null"`   // десятичное число хранится строкой
	Currency     string     `gorm:"type:varchar(10);default:ILS"`
	AppliesTo    JSON       `gorm:"type:jsonb"`                    // allow-списки: projectTypes, features, clientTypes
	StartsAt     *time.Time `gorm:"default:null"`                  // окно активации, NULL = без нижней границы
	EndsAt       *time.Time `gorm:"default:null"`                  // NULL = без верхней границы
	MaxUses      *int       `gorm:"default:null"`                  // NULL = без лимита
	UsedCount    int        `gorm:"not null;default:0"`            // монотонный счетчик использований
	PerUserLimit *int       `gorm:"default:null"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DiscountAppliesTo — распарсенное содержимое applies_to.
// Пустой список = ограничения нет.
type DiscountAppliesTo struct {
	ProjectTypes []string `json:"projectTypes,omitempty"`
	Features     []string `json:"features,omitempty"`
	ClientTypes  []string `json:"clientTypes,omitempty"`
}
