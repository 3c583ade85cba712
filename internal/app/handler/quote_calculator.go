package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"
)

// Структура для хранения параметров расчета
type QuoteParams struct {
	ProjectType *repository.ProjectTypeModel
	ClientType  string
	Pages       int
	Features    []repository.FeatureModel
	Multipliers []appliedMultiplier
	Discount    *ds.PricingDiscount
}

type appliedMultiplier struct {
	GroupKey    string
	OptionKey   string
	DisplayName string
	Value       float64
}

// resolveQuoteParams сопоставляет запрос с моделью ценообразования.
// Неизвестный тип проекта - ошибка; неизвестная фича или вариант
// множителя - тоже: клиент не должен молча получить другую цену.
func resolveQuoteParams(model *repository.PricingModel, req dto.QuoteRequest) (*QuoteParams, error) {
	params := &QuoteParams{
		ClientType: req.ClientTypeKey,
		Pages:      req.Pages,
	}

	for i := range model.ProjectTypes {
		if model.ProjectTypes[i].Key == req.ProjectTypeKey {
			params.ProjectType = &model.ProjectTypes[i]
			break
		}
	}
	if params.ProjectType == nil {
		return nil, fmt.Errorf("неизвестный тип проекта %q", req.ProjectTypeKey)
	}

	featuresByKey := make(map[string]repository.FeatureModel, len(model.Features))
	for _, f := range model.Features {
		featuresByKey[f.Key] = f
	}
	for _, key := range req.FeatureKeys {
		feature, ok := featuresByKey[key]
		if !ok {
			return nil, fmt.Errorf("неизвестная фича %q", key)
		}
		params.Features = append(params.Features, feature)
	}

	for _, group := range model.MultiplierGroups {
		optionKey, ok := req.Multipliers[group.Key]
		if !ok {
			continue
		}
		found := false
		for _, option := range group.Options {
			if option.OptionKey == optionKey {
				params.Multipliers = append(params.Multipliers, appliedMultiplier{
					GroupKey:    group.Key,
					OptionKey:   option.OptionKey,
					DisplayName: option.DisplayName,
					Value:       option.Value,
				})
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("неизвестный вариант %q в группе %q", optionKey, group.Key)
		}
	}
	// Вариант для несуществующей группы - ошибка по той же причине
	groupKeys := make(map[string]bool, len(model.MultiplierGroups))
	for _, group := range model.MultiplierGroups {
		groupKeys[group.Key] = true
	}
	for groupKey := range req.Multipliers {
		if !groupKeys[groupKey] {
			return nil, fmt.Errorf("неизвестная группа множителей %q", groupKey)
		}
	}

	return params, nil
}

// baseRateForSegment находит ставку по сегменту клиента:
// точное совпадение (тип, сегмент) > ставка без сегмента > ставка типа проекта
func baseRateForSegment(model *repository.PricingModel, projectTypeKey, clientTypeKey string) float64 {
	var segmentless *repository.BaseRateModel
	for i := range model.BaseRates {
		br := &model.BaseRates[i]
		if br.ProjectTypeKey != projectTypeKey {
			continue
		}
		if br.ClientTypeKey != nil && clientTypeKey != "" && *br.ClientTypeKey == clientTypeKey {
			return float64(br.BaseRateIls)
		}
		if br.ClientTypeKey == nil && segmentless == nil {
			segmentless = br
		}
	}
	if segmentless != nil {
		return float64(segmentless.BaseRateIls)
	}
	for _, pt := range model.ProjectTypes {
		if pt.Key == projectTypeKey {
			return float64(pt.BaseRateIls)
		}
	}
	return 0
}

// ComputeQuote выполняет расчет стоимости по разрешенным параметрам.
// Порядок: база -> фичи -> страницы -> множители -> минимум -> скидка.
func ComputeQuote(model *repository.PricingModel, params *QuoteParams) dto.QuoteResponse {
	breakdown := make([]dto.QuoteBreakdownLine, 0)

	base := baseRateForSegment(model, params.ProjectType.Key, params.ClientType)
	breakdown = append(breakdown, dto.QuoteBreakdownLine{
		Label:  "Базовая ставка: " + params.ProjectType.DisplayName,
		Amount: base,
	})
	total := base

	for _, feature := range params.Features {
		cost := float64(feature.CostIls)
		breakdown = append(breakdown, dto.QuoteBreakdownLine{
			Label:  "Фича: " + feature.DisplayName,
			Amount: cost,
		})
		total += cost
	}

	if params.Pages > 0 {
		pagesCost := model.Meta.PageCostPerPage * float64(params.Pages)
		breakdown = append(breakdown, dto.QuoteBreakdownLine{
			Label:  fmt.Sprintf("Страницы: %d", params.Pages),
			Amount: pagesCost,
		})
		total += pagesCost
	}

	for _, m := range params.Multipliers {
		before := total
		total *= m.Value
		breakdown = append(breakdown, dto.QuoteBreakdownLine{
			Label:  fmt.Sprintf("Множитель %s (x%s)", m.DisplayName, strconv.FormatFloat(m.Value, 'f', -1, 64)),
			Amount: total - before,
		})
	}

	// Минимальная стоимость по типу проекта
	if minimum, ok := model.Meta.ProjectMinimums[params.ProjectType.Key]; ok && total < minimum {
		breakdown = append(breakdown, dto.QuoteBreakdownLine{
			Label:  "Минимальная стоимость проекта",
			Amount: minimum - total,
		})
		total = minimum
	}

	subtotal := total

	var discountAmount float64
	if params.Discount != nil && discountApplies(params.Discount, params) {
		discountAmount = computeDiscountAmount(params.Discount, total)
		if discountAmount > total {
			discountAmount = total
		}
		if discountAmount > 0 {
			breakdown = append(breakdown, dto.QuoteBreakdownLine{
				Label:  "Промокод " + params.Discount.Code,
				Amount: -discountAmount,
			})
			total -= discountAmount
		}
	}

	rangePercent := model.Meta.RangePercent
	resp := dto.QuoteResponse{
		Currency:  model.Meta.DefaultCurrency,
		Breakdown: breakdown,
		Subtotal:  round2(subtotal),
		Discount:  round2(discountAmount),
		Total:     round2(total),
		RangeMin:  round2(total * (1 - rangePercent)),
		RangeMax:  round2(total * (1 + rangePercent)),
	}
	return resp
}

// discountApplies проверяет allow-списки промокода.
// Пустой список = ограничения по этой оси нет.
func discountApplies(discount *ds.PricingDiscount, params *QuoteParams) bool {
	if len(discount.AppliesTo) == 0 {
		return true
	}

	var appliesTo ds.DiscountAppliesTo
	if err := json.Unmarshal(discount.AppliesTo, &appliesTo); err != nil {
		// Кривой applies_to трактуем как "без ограничений"
		return true
	}

	if len(appliesTo.ProjectTypes) > 0 && !containsString(appliesTo.ProjectTypes, params.ProjectType.Key) {
		return false
	}
	if len(appliesTo.ClientTypes) > 0 && !containsString(appliesTo.ClientTypes, params.ClientType) {
		return false
	}
	if len(appliesTo.Features) > 0 {
		matched := false
		for _, feature := range params.Features {
			if containsString(appliesTo.Features, feature.Key) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func computeDiscountAmount(discount *ds.PricingDiscount, total float64) float64 {
	amount, err := strconv.ParseFloat(discount.Amount, 64)
	if err != nil || amount <= 0 {
		return 0
	}

	switch discount.DiscountType {
	case "percent":
		return total * amount / 100
	case "fixed":
		return amount
	}
	return 0
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
