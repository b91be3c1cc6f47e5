package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func activeCoupon() models.Coupon {
	return models.Coupon{
		Code:      "TEST10",
		Type:      models.CouponTypePercentage,
		Value:     dec("10"),
		StartDate: time.Now().Add(-24 * time.Hour),
		EndDate:   time.Now().Add(24 * time.Hour),
		IsActive:  true,
	}
}

func TestValidateCouponExpired(t *testing.T) {
	coupon := activeCoupon()
	coupon.EndDate = time.Now().Add(-time.Hour)

	verdict := ValidateCoupon(coupon, dec("1000"), 0, time.Now())
	if verdict.Applicable {
		t.Fatal("expected expired coupon to be rejected")
	}
	if verdict.Reason != ReasonExpired {
		t.Fatalf("expected reason %s, got %s", ReasonExpired, verdict.Reason)
	}
}

func TestValidateCouponExpiredRegardlessOfOtherFields(t *testing.T) {
	// Un coupon expiré n'est jamais applicable, même parfait par ailleurs
	coupon := activeCoupon()
	coupon.EndDate = time.Now().Add(-time.Minute)
	coupon.UsageLimit = 0
	coupon.MinPurchase = nil

	verdict := ValidateCoupon(coupon, dec("999999"), 0, time.Now())
	if verdict.Applicable {
		t.Fatal("expired coupon must never be applicable")
	}
}

func TestValidateCouponNotYetActive(t *testing.T) {
	coupon := activeCoupon()
	coupon.StartDate = time.Now().Add(time.Hour)

	verdict := ValidateCoupon(coupon, dec("100"), 0, time.Now())
	if verdict.Applicable || verdict.Reason != ReasonNotYetActive {
		t.Fatalf("expected NotYetActive, got applicable=%v reason=%s", verdict.Applicable, verdict.Reason)
	}
}

func TestValidateCouponInactive(t *testing.T) {
	coupon := activeCoupon()
	coupon.IsActive = false

	verdict := ValidateCoupon(coupon, dec("100"), 0, time.Now())
	if verdict.Applicable || verdict.Reason != ReasonInactive {
		t.Fatalf("expected Inactive, got applicable=%v reason=%s", verdict.Applicable, verdict.Reason)
	}
}

func TestValidateCouponBelowMinimumPurchase(t *testing.T) {
	// Scénario : sous-total 40.00, coupon FIXED_AMOUNT 20 avec minimum 200
	coupon := activeCoupon()
	coupon.Type = models.CouponTypeFixedAmount
	coupon.Value = dec("20")
	coupon.MinPurchase = decPtr("200")

	verdict := ValidateCoupon(coupon, dec("40.00"), 0, time.Now())
	if verdict.Applicable {
		t.Fatal("expected rejection below minimum purchase")
	}
	if verdict.Reason != ReasonBelowMinimumPurchase {
		t.Fatalf("expected reason %s, got %s", ReasonBelowMinimumPurchase, verdict.Reason)
	}
}

func TestValidateCouponUsageLimitExceeded(t *testing.T) {
	coupon := activeCoupon()
	coupon.UsageLimit = 5
	coupon.UsageCount = 5

	verdict := ValidateCoupon(coupon, dec("100"), 0, time.Now())
	if verdict.Applicable || verdict.Reason != ReasonUsageLimitExceeded {
		t.Fatalf("expected UsageLimitExceeded, got applicable=%v reason=%s", verdict.Applicable, verdict.Reason)
	}
}

func TestValidateCouponPerCustomerLimit(t *testing.T) {
	coupon := activeCoupon()
	coupon.UsageLimitPerCustomer = 1

	verdict := ValidateCoupon(coupon, dec("100"), 1, time.Now())
	if verdict.Applicable || verdict.Reason != ReasonPerCustomerLimitReached {
		t.Fatalf("expected per-customer rejection, got applicable=%v reason=%s", verdict.Applicable, verdict.Reason)
	}

	verdict = ValidateCoupon(coupon, dec("100"), 0, time.Now())
	if !verdict.Applicable {
		t.Fatalf("expected first use to pass, got reason=%s", verdict.Reason)
	}
}

func TestValidateCouponApplicable(t *testing.T) {
	verdict := ValidateCoupon(activeCoupon(), dec("100"), 0, time.Now())
	if !verdict.Applicable {
		t.Fatalf("expected applicable coupon, got reason=%s", verdict.Reason)
	}
	if verdict.Reason != "" {
		t.Fatalf("expected empty reason for applicable coupon, got %s", verdict.Reason)
	}
}

func TestComputeDiscountPercentageWithCap(t *testing.T) {
	// Scénario : 250.00 × 15% = 37.50, plafonné à 30.00
	coupon := activeCoupon()
	coupon.Value = dec("15")
	coupon.MaxDiscount = decPtr("30")

	discount := ComputeDiscount(coupon, dec("250.00"), decimal.Zero)
	if !discount.Equal(dec("30.00")) {
		t.Fatalf("expected discount 30.00, got %s", discount)
	}
}

func TestComputeDiscountPercentageWithoutCap(t *testing.T) {
	coupon := activeCoupon()
	coupon.Value = dec("15")

	discount := ComputeDiscount(coupon, dec("250.00"), decimal.Zero)
	if !discount.Equal(dec("37.50")) {
		t.Fatalf("expected discount 37.50, got %s", discount)
	}
}

func TestComputeDiscountPercentageRoundsHalfUp(t *testing.T) {
	// 10% de 10.05 = 1.005 → arrondi au centime supérieur
	coupon := activeCoupon()
	coupon.Value = dec("10")

	discount := ComputeDiscount(coupon, dec("10.05"), decimal.Zero)
	if !discount.Equal(dec("1.01")) {
		t.Fatalf("expected 1.01 (half-up), got %s", discount)
	}
}

func TestComputeDiscountFixedClampedToSubtotal(t *testing.T) {
	// Un montant fixe ne dépasse jamais le sous-total
	coupon := activeCoupon()
	coupon.Type = models.CouponTypeFixedAmount
	coupon.Value = dec("50")

	tests := []struct {
		subtotal string
		want     string
	}{
		{"200.00", "50"},
		{"50.00", "50"},
		{"30.00", "30.00"},
		{"0", "0"},
	}

	for _, tt := range tests {
		got := ComputeDiscount(coupon, dec(tt.subtotal), decimal.Zero)
		if !got.Equal(dec(tt.want)) {
			t.Fatalf("subtotal=%s: expected discount %s, got %s", tt.subtotal, tt.want, got)
		}
	}
}

func TestComputeDiscountFreeShipping(t *testing.T) {
	// FREE_SHIPPING annule la livraison, pas le sous-total
	coupon := activeCoupon()
	coupon.Type = models.CouponTypeFreeShipping
	coupon.Value = decimal.Zero

	discount := ComputeDiscount(coupon, dec("300.00"), dec("12.99"))
	if !discount.Equal(dec("12.99")) {
		t.Fatalf("expected discount 12.99 (shipping cost), got %s", discount)
	}
}

func TestComputeDiscountUnknownTypeIsZero(t *testing.T) {
	coupon := activeCoupon()
	coupon.Type = "BOGOF"

	discount := ComputeDiscount(coupon, dec("100"), dec("5"))
	if !discount.IsZero() {
		t.Fatalf("expected zero discount for unknown type, got %s", discount)
	}
}
