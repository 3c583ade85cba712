package dto

import "encoding/json"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Типы проектов (Project Types) ============

type ProjectTypeResponse struct {
	ID           uint    `json:"id"`
	Key          string  `json:"key"`
	DisplayName  string  `json:"display_name"`
	BaseRateIls  int     `json:"base_rate_ils"`
	ImageURL     *string `json:"image_url,omitempty"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
}

type ProjectTypeListResponse struct {
	ProjectTypes []ProjectTypeResponse `json:"project_types"`
	Total        int                   `json:"total"`
}

type CreateProjectTypeRequest struct {
	Key          string `json:"key" binding:"required,min=2,max=64"`
	DisplayName  string `json:"display_name" binding:"required"`
	BaseRateIls  int    `json:"base_rate_ils" binding:"required,gt=0"`
	DisplayOrder int    `json:"display_order" binding:"gte=0"`
}

type UpdateProjectTypeRequest struct {
	DisplayName  *string `json:"display_name"`
	BaseRateIls  *int    `json:"base_rate_ils" binding:"omitempty,gt=0"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active"`
}

// ============ Базовые ставки (Base Rates) ============

type BaseRateResponse struct {
	ID             uint    `json:"id"`
	ProjectTypeKey string  `json:"project_type_key"`
	ClientTypeKey  *string `json:"client_type_key,omitempty"`
	BaseRateIls    int     `json:"base_rate_ils"`
	DisplayOrder   int     `json:"display_order"`
	IsActive       bool    `json:"is_active"`
}

type CreateBaseRateRequest struct {
	ProjectTypeKey string  `json:"project_type_key" binding:"required"`
	ClientTypeKey  *string `json:"client_type_key"`
	BaseRateIls    int     `json:"base_rate_ils" binding:"required,gt=0"`
	DisplayOrder   int     `json:"display_order" binding:"gte=0"`
}

type UpdateBaseRateRequest struct {
	ClientTypeKey *string `json:"client_type_key"`
	BaseRateIls   *int    `json:"base_rate_ils" binding:"omitempty,gt=0"`
	DisplayOrder  *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsActive      *bool   `json:"is_active"`
}

// ============ Фичи (Features) ============

type FeatureResponse struct {
	ID           uint    `json:"id"`
	Key          string  `json:"key"`
	DisplayName  string  `json:"display_name"`
	CostIls      int     `json:"cost_ils"`
	GroupName    *string `json:"group_name,omitempty"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
}

type CreateFeatureRequest struct {
	Key          string  `json:"key" binding:"required,min=2,max=64"`
	DisplayName  string  `json:"display_name" binding:"required"`
	CostIls      int     `json:"cost_ils" binding:"gte=0"`
	GroupName    *string `json:"group_name"`
	DisplayOrder int     `json:"display_order" binding:"gte=0"`
}

type UpdateFeatureRequest struct {
	DisplayName  *string `json:"display_name"`
	CostIls      *int    `json:"cost_ils" binding:"omitempty,gte=0"`
	GroupName    *string `json:"group_name"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active"`
}

// ============ Множители (Multipliers) ============

type MultiplierGroupResponse struct {
	ID           uint   `json:"id"`
	Key          string `json:"key"`
	DisplayName  string `json:"display_name"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type MultiplierValueResponse struct {
	ID           uint   `json:"id"`
	GroupKey     string `json:"group_key"`
	OptionKey    string `json:"option_key"`
	Value        string `json:"value"`
	IsFixed      bool   `json:"is_fixed"`
	DisplayName  string `json:"display_name"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type CreateMultiplierGroupRequest struct {
	Key          string `json:"key" binding:"required,min=2,max=64"`
	DisplayName  string `json:"display_name" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"gte=0"`
}

type UpdateMultiplierGroupRequest struct {
	DisplayName  *string `json:"display_name"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active"`
}

type CreateMultiplierValueRequest struct {
	GroupKey     string `json:"group_key" binding:"required"`
	OptionKey    string `json:"option_key" binding:"required"`
	Value        string `json:"value" binding:"required"`
	IsFixed      bool   `json:"is_fixed"`
	DisplayName  string `json:"display_name" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"gte=0"`
}

type UpdateMultiplierValueRequest struct {
	Value        *string `json:"value"`
	IsFixed      *bool   `json:"is_fixed"`
	DisplayName  *string `json:"display_name"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active"`
}

// ============ Meta-настройки ============

type MetaSettingResponse struct {
	ID           uint            `json:"id"`
	Key          string          `json:"key"`
	Value        json.RawMessage `json:"value"`
	DisplayOrder int             `json:"display_order"`
	IsActive     bool            `json:"is_active"`
}

type UpsertMetaSettingRequest struct {
	Value        json.RawMessage `json:"value" binding:"required"`
	DisplayOrder int             `json:"display_order" binding:"gte=0"`
	IsActive     *bool           `json:"is_active"`
}

// ============ Сортировка ============

type ReorderItem struct {
	ID           uint `json:"id" binding:"required"`
	DisplayOrder int  `json:"display_order" binding:"gte=0"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

// ============ Скидки (Pricing Discounts) ============

type DiscountResponse struct {
	ID           uint            `json:"id"`
	Code         string          `json:"code"`
	DiscountType string          `json:"discount_type"`
	Amount       string          `json:"amount"`
	Currency     string          `json:"currency"`
	AppliesTo    json.RawMessage `json:"applies_to,omitempty"`
	StartsAt     *string         `json:"starts_at,omitempty"`
	EndsAt       *string         `json:"ends_at,omitempty"`
	MaxUses      *int            `json:"max_uses,omitempty"`
	UsedCount    int             `json:"used_count"`
	PerUserLimit *int            `json:"per_user_limit,omitempty"`
	IsActive     bool            `json:"is_active"`
}

type DiscountListResponse struct {
	Discounts []DiscountResponse `json:"discounts"`
	Total     int                `json:"total"`
}

type CreateDiscountRequest struct {
	Code         string          `json:"code" binding:"required,min=2,max=64"`
	DiscountType string          `json:"discount_type" binding:"required,oneof=percent fixed"`
	Amount       string          `json:"amount" binding:"required"`
	Currency     string          `json:"currency"`
	AppliesTo    json.RawMessage `json:"applies_to"`
	StartsAt     *string         `json:"starts_at"`
	EndsAt       *string         `json:"ends_at"`
	MaxUses      *int            `json:"max_uses" binding:"omitempty,gt=0"`
	PerUserLimit *int            `json:"per_user_limit" binding:"omitempty,gt=0"`
}

type UpdateDiscountRequest struct {
	DiscountType *string         `json:"discount_type" binding:"omitempty,oneof=percent fixed"`
	Amount       *string         `json:"amount"`
	Currency     *string         `json:"currency"`
	AppliesTo    json.RawMessage `json:"applies_to"`
	StartsAt     *string         `json:"starts_at"`
	EndsAt       *string         `json:"ends_at"`
	MaxUses      *int            `json:"max_uses" binding:"omitempty,gt=0"`
	PerUserLimit *int            `json:"per_user_limit" binding:"omitempty,gt=0"`
	IsActive     *bool           `json:"is_active"`
}

// ============ Калькулятор (Quotes) ============

type QuoteRequest struct {
	ProjectTypeKey string            `json:"project_type_key" binding:"required"`
	ClientTypeKey  string            `json:"client_type_key"`
	Pages          int               `json:"pages" binding:"gte=0"`
	FeatureKeys    []string          `json:"feature_keys"`
	Multipliers    map[string]string `json:"multipliers"`
	DiscountCode   string            `json:"discount_code"`
}

type QuoteBreakdownLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type QuoteResponse struct {
	QuoteID   string               `json:"quote_id"`
	Token     string               `json:"token,omitempty"`
	Currency  string               `json:"currency"`
	Breakdown []QuoteBreakdownLine `json:"breakdown"`
	Subtotal  float64              `json:"subtotal"`
	Discount  float64              `json:"discount,omitempty"`
	Total     float64              `json:"total"`
	RangeMin  float64              `json:"range_min"`
	RangeMax  float64              `json:"range_max"`
}
