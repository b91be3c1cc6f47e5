package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: dec("19.99"), Quantity: 2},
		{ProductID: "p2", Price: dec("5.50"), Quantity: 1},
	}

	got := Subtotal(items)
	if !got.Equal(dec("45.48")) {
		t.Fatalf("expected subtotal 45.48, got %s", got)
	}
}

func TestSubtotalEmptyCart(t *testing.T) {
	if got := Subtotal(nil); !got.IsZero() {
		t.Fatalf("expected zero subtotal for empty cart, got %s", got)
	}
}

func TestOrderTotal(t *testing.T) {
	// total = sous-total + livraison + taxe − réduction
	got := OrderTotal(dec("100.00"), dec("5.99"), dec("9.00"), dec("10.00"))
	if !got.Equal(dec("104.99")) {
		t.Fatalf("expected total 104.99, got %s", got)
	}
}

func TestOrderTotalNeverNegative(t *testing.T) {
	got := OrderTotal(dec("10.00"), decimal.Zero, decimal.Zero, dec("50.00"))
	if !got.IsZero() {
		t.Fatalf("expected total clamped to 0, got %s", got)
	}
}

func TestOrderTotalInvariant(t *testing.T) {
	tests := []struct {
		subtotal, shipping, tax, discount string
		want                              string
	}{
		{"250.00", "0", "0", "30.00", "220.00"},
		{"40.00", "5.99", "3.68", "0", "49.67"},
		{"0", "0", "0", "0", "0"},
		{"20.00", "5.00", "0", "30.00", "0"}, // réduction > sous-total + livraison
	}

	for _, tt := range tests {
		got := OrderTotal(dec(tt.subtotal), dec(tt.shipping), dec(tt.tax), dec(tt.discount))
		if !got.Equal(dec(tt.want)) {
			t.Fatalf("subtotal=%s shipping=%s tax=%s discount=%s: expected %s, got %s",
				tt.subtotal, tt.shipping, tt.tax, tt.discount, tt.want, got)
		}
		if got.IsNegative() {
			t.Fatalf("total must never be negative, got %s", got)
		}
	}
}

func TestTaxAppliedToSubtotalNetOfDiscount(t *testing.T) {
	// Taux plat de 8% sur (sous-total − réduction)
	got := Tax(dec("100.00"), dec("20.00"), dec("0.08"))
	if !got.Equal(dec("6.40")) {
		t.Fatalf("expected tax 6.40, got %s", got)
	}
}

func TestTaxBaseClampedToZero(t *testing.T) {
	got := Tax(dec("10.00"), dec("50.00"), dec("0.08"))
	if !got.IsZero() {
		t.Fatalf("expected zero tax when discount exceeds subtotal, got %s", got)
	}
}
