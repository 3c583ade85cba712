package repository

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"

	"github.com/sirupsen/logrus"
)

// Закрытое множество легальных кодировок legacy-значения:
// сырое число, строка, обертка {"value": X} (разворачивается при разборе)
// или карта optionKey -> число (для множителей). Все остальное
// (null, bool, массив, битый JSON) помечается как legacyInvalid.
type legacyValueKind int

const (
	legacyNumber legacyValueKind = iota
	legacyString
	legacyMap
	legacyInvalid
)

type legacyValue struct {
	kind    legacyValueKind
	num     float64
	str     string
	entries map[string]float64
}

// number приводит значение к числу; мусор дает 0, адаптер никогда не падает
func (v legacyValue) number() float64 {
	n, _ := v.numberOK()
	return n
}

// numberOK отличает явно заданное число (в том числе 0) от мусора,
// который к числу не приводится
func (v legacyValue) numberOK() (float64, bool) {
	switch v.kind {
	case legacyNumber:
		return v.num, true
	case legacyString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func decodeLegacyValue(raw ds.JSON) legacyValue {
	if len(raw) == 0 {
		return legacyValue{kind: legacyInvalid}
	}
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return legacyValue{kind: legacyInvalid}
	}
	return classifyLegacyValue(parsed)
}

func classifyLegacyValue(parsed interface{}) legacyValue {
	switch v := parsed.(type) {
	case float64:
		return legacyValue{kind: legacyNumber, num: v}
	case string:
		return legacyValue{kind: legacyString, str: v}
	case map[string]interface{}:
		// Обертка {"value": X} разворачивается до вложенного значения
		if inner, ok := v["value"]; ok && len(v) == 1 {
			return classifyLegacyValue(inner)
		}
		entries := make(map[string]float64, len(v))
		for key, entry := range v {
			entries[key] = classifyLegacyValue(entry).number()
		}
		return legacyValue{kind: legacyMap, entries: entries}
	}
	return legacyValue{kind: legacyInvalid}
}

// LoadLegacyPricingModel восстанавливает PricingModel из устаревшей плоской
// таблицы calculator_settings. Возвращает nil (не ошибку) когда активных
// строк нет - это сигнал "мигрировать нечего". Любая ошибка чтения
// логируется и тоже превращается в nil: путь опциональный, падать нельзя.
func (r *Repository) LoadLegacyPricingModel(ctx context.Context) *PricingModel {
	var rows []ds.CalculatorSetting
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&rows).Error
	if err != nil {
		logrus.Errorf("legacy pricing: ошибка чтения calculator_settings: %v", err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	model := &PricingModel{
		ProjectTypes: []ProjectTypeModel{},
		// В legacy-схеме нет понятия сегмента клиента, базовые ставки
		// по сегментам всегда пустые
		BaseRates:        []BaseRateModel{},
		Features:         []FeatureModel{},
		MultiplierGroups: []MultiplierGroupModel{},
		Meta:             DefaultPricingMeta(),
	}

	for _, row := range rows {
		value := decodeLegacyValue(row.SettingValue)

		switch row.SettingType {
		case "base_rate":
			model.ProjectTypes = append(model.ProjectTypes, ProjectTypeModel{
				Key:         row.SettingKey,
				DisplayName: legacyDisplayName(row),
				BaseRateIls: int(math.Round(value.number())),
				Order:       row.DisplayOrder,
				IsActive:    true,
			})
		case "feature_cost":
			model.Features = append(model.Features, FeatureModel{
				Key:         row.SettingKey,
				DisplayName: legacyDisplayName(row),
				CostIls:     int(math.Round(value.number())),
				Order:       row.DisplayOrder,
				IsActive:    true,
			})
		case "multiplier":
			model.MultiplierGroups = append(model.MultiplierGroups, legacyMultiplierGroup(row, value))
		case "meta":
			applyLegacyMeta(&model.Meta, row.SettingKey, row.SettingValue, value)
		case "page_cost":
			// Старое имя настройки, эквивалент meta.pageCostPerPage
			if n, ok := value.numberOK(); ok {
				model.Meta.PageCostPerPage = n
			}
		}
	}

	sort.SliceStable(model.ProjectTypes, func(i, j int) bool {
		return model.ProjectTypes[i].Order < model.ProjectTypes[j].Order
	})
	sort.SliceStable(model.Features, func(i, j int) bool {
		return model.Features[i].Order < model.Features[j].Order
	})
	sort.SliceStable(model.MultiplierGroups, func(i, j int) bool {
		return model.MultiplierGroups[i].Order < model.MultiplierGroups[j].Order
	})

	logrus.Warnf("pricing: используются немигрированные legacy-настройки калькулятора (%d строк)", len(rows))
	return model
}

func legacyMultiplierGroup(row ds.CalculatorSetting, value legacyValue) MultiplierGroupModel {
	group := MultiplierGroupModel{
		Key:         row.SettingKey,
		DisplayName: legacyDisplayName(row),
		Order:       row.DisplayOrder,
		IsActive:    true,
		Options:     []MultiplierOptionModel{},
	}

	if value.kind != legacyMap {
		return group
	}

	// Карта не хранит порядок, сортируем ключи для детерминизма
	keys := make([]string, 0, len(value.entries))
	for key := range value.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		num := value.entries[key]
		group.Options = append(group.Options, MultiplierOptionModel{
			OptionKey:   key,
			Value:       num,
			IsFixed:     num == 1.0, // базовый вариант - множитель ровно 1.0
			DisplayName: capitalize(key),
			Order:       i,
			IsActive:    true,
		})
	}

	return group
}

func applyLegacyMeta(meta *PricingMeta, key string, raw ds.JSON, value legacyValue) {
	// Явно заданное legacy-значение перекрывает значение по умолчанию,
	// даже нулевое; пропускается только мусор, не приводимый к числу
	switch key {
	case "pageCostPerPage":
		if n, ok := value.numberOK(); ok {
			meta.PageCostPerPage = n
		}
	case "rangePercent":
		if n, ok := value.numberOK(); ok {
			meta.RangePercent = n
		}
	case "defaultCurrency":
		if value.kind == legacyString && value.str != "" {
			meta.DefaultCurrency = value.str
		} else if s, ok := unwrapString(raw); ok && s != "" {
			meta.DefaultCurrency = s
		}
	case "projectMinimums":
		if value.kind == legacyMap {
			meta.ProjectMinimums = value.entries
		}
	}
}

func legacyDisplayName(row ds.CalculatorSetting) string {
	if row.DisplayName != "" {
		return row.DisplayName
	}
	return capitalize(row.SettingKey)
}

// capitalize поднимает первую руну в верхний регистр; ключи бывают
// не только латиницей, резать строку по байтам нельзя
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
