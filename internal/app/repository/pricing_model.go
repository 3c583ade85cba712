package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"golang.org/x/sync/errgroup"
)

// Значения meta по умолчанию: калькулятор не должен падать из-за
// отсутствующих настроек
const (
	DefaultPageCostPerPage = 750.0
	DefaultRangePercent    = 0.18
	DefaultCurrency        = "ILS"
)

// Читаемая модель ценообразования - снапшот всей конфигурации для калькулятора.
// Не персистится, собирается заново на каждый вызов.
type PricingModel struct {
	ProjectTypes     []ProjectTypeModel     `json:"projectTypes"`
	BaseRates        []BaseRateModel        `json:"baseRates"`
	Features         []FeatureModel         `json:"features"`
	MultiplierGroups []MultiplierGroupModel `json:"multiplierGroups"`
	Meta             PricingMeta            `json:"meta"`
}

type ProjectTypeModel struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	BaseRateIls int     `json:"baseRateIls"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Order       int     `json:"order"`
	IsActive    bool    `json:"isActive"`
}

type BaseRateModel struct {
	ProjectTypeKey string  `json:"projectTypeKey"`
	ClientTypeKey  *string `json:"clientTypeKey"`
	BaseRateIls    int     `json:"baseRateIls"`
	Order          int     `json:"order"`
	IsActive       bool    `json:"isActive"`
}

type FeatureModel struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	CostIls     int     `json:"costIls"`
	Group       *string `json:"group"`
	Order       int     `json:"order"`
	IsActive    bool    `json:"isActive"`
}

type MultiplierGroupModel struct {
	Key         string                  `json:"key"`
	DisplayName string                  `json:"displayName"`
	Order       int                     `json:"order"`
	IsActive    bool                    `json:"isActive"`
	Options     []MultiplierOptionModel `json:"options"`
}

type MultiplierOptionModel struct {
	OptionKey   string  `json:"optionKey"`
	Value       float64 `json:"value"`
	IsFixed     bool    `json:"isFixed"`
	DisplayName string  `json:"displayName"`
	Order       int     `json:"order"`
	IsActive    bool    `json:"isActive"`
}

type PricingMeta struct {
	PageCostPerPage float64            `json:"pageCostPerPage"`
	RangePercent    float64            `json:"rangePercent"`
	DefaultCurrency string             `json:"defaultCurrency"`
	ProjectMinimums map[string]float64 `json:"projectMinimums"`
}

// DefaultPricingMeta возвращает meta со значениями по умолчанию
func DefaultPricingMeta() PricingMeta {
	return PricingMeta{
		PageCostPerPage: DefaultPageCostPerPage,
		RangePercent:    DefaultRangePercent,
		DefaultCurrency: DefaultCurrency,
		ProjectMinimums: map[string]float64{},
	}
}

// IsEmpty — в нормализованных таблицах нет ни одной активной записи
func (m *PricingModel) IsEmpty() bool {
	return len(m.ProjectTypes) == 0 &&
		len(m.BaseRates) == 0 &&
		len(m.Features) == 0 &&
		len(m.MultiplierGroups) == 0
}

// GetPricingModel собирает модель из нормализованных таблиц.
// Шесть независимых выборок выполняются параллельно; порядок завершения
// не важен, межтабличных инвариантов на чтении нет. Ошибка любой выборки
// пробрасывается без повторов.
func (r *Repository) GetPricingModel(ctx context.Context) (*PricingModel, error) {
	var (
		projectTypes []ds.ProjectType
		baseRates    []ds.BaseRate
		features     []ds.Feature
		groups       []ds.MultiplierGroup
		values       []ds.MultiplierValue
		metaRows     []ds.MetaSetting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.activeOrdered(gctx).Find(&projectTypes).Error })
	g.Go(func() error { return r.activeOrdered(gctx).Find(&baseRates).Error })
	g.Go(func() error { return r.activeOrdered(gctx).Find(&features).Error })
	g.Go(func() error { return r.activeOrdered(gctx).Find(&groups).Error })
	g.Go(func() error { return r.activeOrdered(gctx).Find(&values).Error })
	g.Go(func() error { return r.activeOrdered(gctx).Find(&metaRows).Error })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	model := &PricingModel{
		ProjectTypes:     make([]ProjectTypeModel, len(projectTypes)),
		BaseRates:        make([]BaseRateModel, len(baseRates)),
		Features:         make([]FeatureModel, len(features)),
		MultiplierGroups: make([]MultiplierGroupModel, 0, len(groups)),
		Meta:             parseMetaRows(metaRows),
	}

	for i, pt := range projectTypes {
		model.ProjectTypes[i] = ProjectTypeModel{
			Key:         pt.Key,
			DisplayName: pt.DisplayName,
			BaseRateIls: pt.BaseRateIls,
			ImageURL:    pt.ImageURL,
			Order:       pt.DisplayOrder,
			IsActive:    pt.IsActive,
		}
	}

	for i, br := range baseRates {
		model.BaseRates[i] = BaseRateModel{
			ProjectTypeKey: br.ProjectTypeKey,
			ClientTypeKey:  br.ClientTypeKey,
			BaseRateIls:    br.BaseRateIls,
			Order:          br.DisplayOrder,
			IsActive:       br.IsActive,
		}
	}

	for i, f := range features {
		model.Features[i] = FeatureModel{
			Key:         f.Key,
			DisplayName: f.DisplayName,
			CostIls:     f.CostIls,
			Group:       f.GroupName,
			Order:       f.DisplayOrder,
			IsActive:    f.IsActive,
		}
	}

	// Группируем значения множителей по ключу группы; выборка уже
	// отсортирована по display_order, порядок внутри группы сохраняется
	valuesByGroup := make(map[string][]MultiplierOptionModel)
	for _, v := range values {
		valuesByGroup[v.GroupKey] = append(valuesByGroup[v.GroupKey], MultiplierOptionModel{
			OptionKey:   v.OptionKey,
			Value:       parseDecimal(v.Value),
			IsFixed:     v.IsFixed,
			DisplayName: v.DisplayName,
			Order:       v.DisplayOrder,
			IsActive:    v.IsActive,
		})
	}

	for _, grp := range groups {
		options := valuesByGroup[grp.Key]
		if options == nil {
			options = []MultiplierOptionModel{}
		}
		model.MultiplierGroups = append(model.MultiplierGroups, MultiplierGroupModel{
			Key:         grp.Key,
			DisplayName: grp.DisplayName,
			Order:       grp.DisplayOrder,
			IsActive:    grp.IsActive,
			Options:     options,
		})
	}

	return model, nil
}

// ResolvePricingModel — основной контракт для калькулятора:
// нормализованные таблицы -> legacy-таблица -> значения по умолчанию.
// Пути взаимоисключающие: если нормализованные таблицы заполнены,
// legacy-данные игнорируются полностью.
func (r *Repository) ResolvePricingModel(ctx context.Context) (*PricingModel, error) {
	model, err := r.GetPricingModel(ctx)
	if err != nil {
		return nil, err
	}
	if !model.IsEmpty() {
		return model, nil
	}

	if legacy := r.LoadLegacyPricingModel(ctx); legacy != nil {
		return legacy, nil
	}

	// Пустое хранилище - валидный результат, а не ошибка
	return model, nil
}

// parseMetaRows разворачивает строки meta в плоскую структуру.
// Известные ключи читаются из обертки {"value": X}, projectMinimums -
// сырой объект. Отсутствующий ключ молча получает значение по умолчанию.
func parseMetaRows(rows []ds.MetaSetting) PricingMeta {
	meta := DefaultPricingMeta()

	for _, row := range rows {
		switch row.Key {
		case "pageCostPerPage":
			if v, ok := unwrapNumber(row.Value); ok {
				meta.PageCostPerPage = v
			}
		case "rangePercent":
			if v, ok := unwrapNumber(row.Value); ok {
				meta.RangePercent = v
			}
		case "defaultCurrency":
			if s, ok := unwrapString(row.Value); ok {
				meta.DefaultCurrency = s
			}
		case "projectMinimums":
			var mins map[string]float64
			if err := json.Unmarshal(row.Value, &mins); err == nil && mins != nil {
				meta.ProjectMinimums = mins
			}
		}
	}

	return meta
}

// unwrapNumber достает число из {"value": X}; терпит и сырое число
func unwrapNumber(raw ds.JSON) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var wrapped struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Value != nil {
		return *wrapped.Value, true
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}
	return 0, false
}

// unwrapString достает строку из {"value": "X"}; терпит и сырую строку
func unwrapString(raw ds.JSON) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var wrapped struct {
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Value != nil {
		return *wrapped.Value, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return "", false
}
