package ds

import "time"

// 7. Устаревшая плоская таблица настроек калькулятора.
// Используется только legacy-адаптером пока данные не мигрированы в
// нормализованные таблицы. Значение кодируется по-разному: сырое число,
// обертка {"value": X} или карта optionKey -> число (для множителей).
type CalculatorSetting struct {
	ID           uint   `gorm:"primaryKey"`
	SettingKey   string `gorm:"type:varchar(100);not null;index"`
	SettingType  string `gorm:"type:varchar(50);not null"` // base_rate, feature_cost, multiplier, meta, page_cost
	SettingValue JSON   `gorm:"type:jsonb"`
	DisplayName  string `gorm:"type:varchar(200)"`
	DisplayOrder int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CalculatorSetting) TableName() string {
	return "calculator_settings"
}
