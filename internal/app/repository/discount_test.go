package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
)

func TestGetActivePricingDiscountByCode(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	mustCreate(t, r, &ds.PricingDiscount{Code: "WELCOME10", DiscountType: "percent", Amount: "10", Currency: "ILS", StartsAt: &past, EndsAt: &future, IsActive: true})

	// Поиск без учета регистра
	discount, err := r.GetActivePricingDiscountByCode(ctx, "welcome10")
	if err != nil {
		t.Fatalf("GetActivePricingDiscountByCode: %v", err)
	}
	if discount.Code != "WELCOME10" {
		t.Errorf("code = %q, want WELCOME10", discount.Code)
	}

	if _, err := r.GetActivePricingDiscountByCode(ctx, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown code err = %v, want ErrNotFound", err)
	}
}

func TestGetActivePricingDiscountWindow(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	recentPast := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	mustCreate(t, r, &ds.PricingDiscount{Code: "EXPIRED", DiscountType: "percent", Amount: "10", StartsAt: &past, EndsAt: &recentPast, IsActive: true})
	mustCreate(t, r, &ds.PricingDiscount{Code: "UPCOMING", DiscountType: "percent", Amount: "10", StartsAt: &future, IsActive: true})
	mustCreate(t, r, &ds.PricingDiscount{Code: "OPEN", DiscountType: "percent", Amount: "10", IsActive: true})
	mustCreate(t, r, &ds.PricingDiscount{Code: "DISABLED", DiscountType: "percent", Amount: "10", IsActive: false})

	if _, err := r.GetActivePricingDiscountByCode(ctx, "EXPIRED"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired code err = %v, want ErrNotFound", err)
	}
	if _, err := r.GetActivePricingDiscountByCode(ctx, "UPCOMING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("upcoming code err = %v, want ErrNotFound", err)
	}
	if _, err := r.GetActivePricingDiscountByCode(ctx, "DISABLED"); !errors.Is(err, ErrNotFound) {
		t.Errorf("disabled code err = %v, want ErrNotFound", err)
	}
	// NULL-границы = окно открыто
	if _, err := r.GetActivePricingDiscountByCode(ctx, "OPEN"); err != nil {
		t.Errorf("open window code err = %v, want nil", err)
	}
}

func TestDiscountLookupIgnoresExhaustion(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	// Лимит исчерпан, но поиск промокод все равно находит:
	// исчерпание проверяется при списании
	mustCreate(t, r, &ds.PricingDiscount{Code: "FULL", DiscountType: "fixed", Amount: "100", MaxUses: intPtr(5), UsedCount: 5, IsActive: true})

	discount, err := r.GetActivePricingDiscountByCode(ctx, "FULL")
	if err != nil {
		t.Fatalf("GetActivePricingDiscountByCode: %v", err)
	}
	if discount.UsedCount != 5 {
		t.Errorf("used count = %d, want 5", discount.UsedCount)
	}
}

func TestTryIncrementDiscountUsage(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	discount := &ds.PricingDiscount{Code: "ONCE", DiscountType: "fixed", Amount: "50", MaxUses: intPtr(1), IsActive: true}
	mustCreate(t, r, discount)

	ok, err := r.TryIncrementDiscountUsage(ctx, discount.ID)
	if err != nil {
		t.Fatalf("TryIncrementDiscountUsage: %v", err)
	}
	if !ok {
		t.Fatal("first redemption failed, want success")
	}

	// Лимит достигнут, второе списание не проходит
	ok, err = r.TryIncrementDiscountUsage(ctx, discount.ID)
	if err != nil {
		t.Fatalf("TryIncrementDiscountUsage: %v", err)
	}
	if ok {
		t.Fatal("second redemption succeeded, want failure")
	}

	reloaded, err := r.GetPricingDiscountByID(ctx, discount.ID)
	if err != nil {
		t.Fatalf("GetPricingDiscountByID: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Errorf("used count = %d, want 1", reloaded.UsedCount)
	}
}

func TestTryIncrementDiscountUsageWithoutLimit(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	discount := &ds.PricingDiscount{Code: "NOLIMIT", DiscountType: "percent", Amount: "5", IsActive: true}
	mustCreate(t, r, discount)

	for i := 0; i < 3; i++ {
		ok, err := r.TryIncrementDiscountUsage(ctx, discount.ID)
		if err != nil {
			t.Fatalf("TryIncrementDiscountUsage: %v", err)
		}
		if !ok {
			t.Fatalf("redemption %d failed for unlimited code", i+1)
		}
	}
}

func TestIncrementDiscountUsageNotFound(t *testing.T) {
	r := newTestRepo(t)

	if err := r.IncrementDiscountUsage(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
