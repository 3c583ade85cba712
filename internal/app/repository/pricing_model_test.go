package repository

import (
	"context"
	"testing"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
)

func TestGetPricingModelOrdersByDisplayOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, r, &ds.ProjectType{Key: "ecommerce", DisplayName: "Интернет-магазин", BaseRateIls: 9000, DisplayOrder: 2, IsActive: true})
	mustCreate(t, r, &ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, DisplayOrder: 0, IsActive: true})
	mustCreate(t, r, &ds.ProjectType{Key: "corporate", DisplayName: "Корпоративный сайт", BaseRateIls: 6000, DisplayOrder: 1, IsActive: true})

	model, err := r.GetPricingModel(ctx)
	if err != nil {
		t.Fatalf("GetPricingModel: %v", err)
	}

	got := make([]string, len(model.ProjectTypes))
	for i, pt := range model.ProjectTypes {
		got[i] = pt.Key
	}
	want := []string{"landing", "corporate", "ecommerce"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("project types order = %v, want %v", got, want)
		}
	}
}

func TestGetPricingModelFiltersInactive(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, r, &ds.Feature{Key: "seo", DisplayName: "SEO", CostIls: 1500, IsActive: true})
	mustCreate(t, r, &ds.Feature{Key: "blog", DisplayName: "Блог", CostIls: 2000, IsActive: false})

	model, err := r.GetPricingModel(ctx)
	if err != nil {
		t.Fatalf("GetPricingModel: %v", err)
	}

	if len(model.Features) != 1 {
		t.Fatalf("features count = %d, want 1", len(model.Features))
	}
	if model.Features[0].Key != "seo" {
		t.Errorf("feature key = %q, want %q", model.Features[0].Key, "seo")
	}
}

func TestResolvePricingModelEmptyStore(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	model, err := r.ResolvePricingModel(ctx)
	if err != nil {
		t.Fatalf("ResolvePricingModel: %v", err)
	}

	if !model.IsEmpty() {
		t.Error("model is not empty for empty store")
	}
	if model.Meta.PageCostPerPage != DefaultPageCostPerPage {
		t.Errorf("pageCostPerPage = %v, want %v", model.Meta.PageCostPerPage, DefaultPageCostPerPage)
	}
	if model.Meta.RangePercent != DefaultRangePercent {
		t.Errorf("rangePercent = %v, want %v", model.Meta.RangePercent, DefaultRangePercent)
	}
	if model.Meta.DefaultCurrency != DefaultCurrency {
		t.Errorf("defaultCurrency = %q, want %q", model.Meta.DefaultCurrency, DefaultCurrency)
	}
	if model.Meta.ProjectMinimums == nil || len(model.Meta.ProjectMinimums) != 0 {
		t.Errorf("projectMinimums = %v, want empty map", model.Meta.ProjectMinimums)
	}
	if model.ProjectTypes == nil || model.BaseRates == nil || model.Features == nil || model.MultiplierGroups == nil {
		t.Error("model slices must be non-nil")
	}
}

func TestGetPricingModelMetaOverrides(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, r, &ds.MetaSetting{Key: "pageCostPerPage", Value: ds.JSON(`{"value": 900}`), IsActive: true})
	mustCreate(t, r, &ds.MetaSetting{Key: "rangePercent", Value: ds.JSON(`{"value": 0.25}`), IsActive: true})
	mustCreate(t, r, &ds.MetaSetting{Key: "defaultCurrency", Value: ds.JSON(`{"value": "USD"}`), IsActive: true})
	mustCreate(t, r, &ds.MetaSetting{Key: "projectMinimums", Value: ds.JSON(`{"landing": 2500}`), IsActive: true})

	model, err := r.GetPricingModel(ctx)
	if err != nil {
		t.Fatalf("GetPricingModel: %v", err)
	}

	if model.Meta.PageCostPerPage != 900 {
		t.Errorf("pageCostPerPage = %v, want 900", model.Meta.PageCostPerPage)
	}
	if model.Meta.RangePercent != 0.25 {
		t.Errorf("rangePercent = %v, want 0.25", model.Meta.RangePercent)
	}
	if model.Meta.DefaultCurrency != "USD" {
		t.Errorf("defaultCurrency = %q, want USD", model.Meta.DefaultCurrency)
	}
	if model.Meta.ProjectMinimums["landing"] != 2500 {
		t.Errorf("projectMinimums[landing] = %v, want 2500", model.Meta.ProjectMinimums["landing"])
	}
}

func TestGetPricingModelInactiveMetaFallsBackToDefault(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, r, &ds.MetaSetting{Key: "pageCostPerPage", Value: ds.JSON(`{"value": 900}`), IsActive: false})

	model, err := r.GetPricingModel(ctx)
	if err != nil {
		t.Fatalf("GetPricingModel: %v", err)
	}

	if model.Meta.PageCostPerPage != DefaultPageCostPerPage {
		t.Errorf("pageCostPerPage = %v, want default %v", model.Meta.PageCostPerPage, DefaultPageCostPerPage)
	}
}

func TestGetPricingModelGroupsMultiplierValues(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, r, &ds.MultiplierGroup{Key: "urgency", DisplayName: "Срочность", DisplayOrder: 0, IsActive: true})
	mustCreate(t, r, &ds.MultiplierGroup{Key: "complexity", DisplayName: "Сложность", DisplayOrder: 1, IsActive: true})
	mustCreate(t, r, &ds.MultiplierValue{GroupKey: "urgency", OptionKey: "rush", Value: "1.5", DisplayName: "Срочно", DisplayOrder: 1, IsActive: true})
	mustCreate(t, r, &ds.MultiplierValue{GroupKey: "urgency", OptionKey: "normal", Value: "1.0", IsFixed: true, DisplayName: "Обычно", DisplayOrder: 0, IsActive: true})

	model, err := r.GetPricingModel(ctx)
	if err != nil {
		t.Fatalf("GetPricingModel: %v", err)
	}

	if len(model.MultiplierGroups) != 2 {
		t.Fatalf("groups count = %d, want 2", len(model.MultiplierGroups))
	}

	urgency := model.MultiplierGroups[0]
	if urgency.Key != "urgency" {
		t.Fatalf("first group = %q, want urgency", urgency.Key)
	}
	if len(urgency.Options) != 2 {
		t.Fatalf("urgency options count = %d, want 2", len(urgency.Options))
	}
	if urgency.Options[0].OptionKey != "normal" || urgency.Options[1].OptionKey != "rush" {
		t.Errorf("options not ordered by display_order: %+v", urgency.Options)
	}
	if urgency.Options[1].Value != 1.5 {
		t.Errorf("rush value = %v, want 1.5", urgency.Options[1].Value)
	}

	// Группа без значений получает пустой слайс, не nil
	complexity := model.MultiplierGroups[1]
	if complexity.Options == nil || len(complexity.Options) != 0 {
		t.Errorf("complexity options = %v, want empty slice", complexity.Options)
	}
}

func TestResolvePricingModelPrefersNormalizedTables(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, r, &ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, IsActive: true})
	mustCreate(t, r, &ds.CalculatorSetting{SettingKey: "landing", SettingType: "base_rate", SettingValue: ds.JSON(`999`), IsActive: true})

	model, err := r.ResolvePricingModel(ctx)
	if err != nil {
		t.Fatalf("ResolvePricingModel: %v", err)
	}

	if len(model.ProjectTypes) != 1 {
		t.Fatalf("project types count = %d, want 1", len(model.ProjectTypes))
	}
	if model.ProjectTypes[0].BaseRateIls != 3000 {
		t.Errorf("base rate = %d, want 3000 (legacy value must be ignored)", model.ProjectTypes[0].BaseRateIls)
	}
}
