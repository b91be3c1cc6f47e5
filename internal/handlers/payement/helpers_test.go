package pa

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
	"velora_back_end/internal/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
		wantErr             bool
	}{
		{"", "", 1, 20, false},
		{"3", "50", 3, 50, false},
		{"1", "100", 1, 100, false},
		{"0", "", 0, 0, true},
		{"-1", "", 0, 0, true},
		{"abc", "", 0, 0, true},
		{"", "0", 0, 0, true},
		{"", "101", 0, 0, true},
		{"", "xyz", 0, 0, true},
	}

	for _, tt := range tests {
		page, limit, err := parsePagination(tt.page, tt.limit)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("page=%q limit=%q: expected error, got none", tt.page, tt.limit)
			}
			continue
		}
		if err != nil {
			t.Fatalf("page=%q limit=%q: unexpected error: %v", tt.page, tt.limit, err)
		}
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Fatalf("page=%q limit=%q: got (%d, %d), expected (%d, %d)",
				tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got := paginate(items, 1, 2)
	if len(got) != 2 || got[0] != 1 {
		t.Fatalf("page 1: got %v", got)
	}

	got = paginate(items, 3, 2)
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("dernière page incomplète: got %v", got)
	}

	got = paginate(items, 4, 2)
	if len(got) != 0 {
		t.Fatalf("page au-delà de la fin: got %v", got)
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	format := regexp.MustCompile(`^VLR-20260831-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		n := generateOrderNumber(now)
		if !format.MatchString(n) {
			t.Fatalf("numéro mal formé: %s", n)
		}
		seen[n] = true
	}
	if len(seen) < 2 {
		t.Fatal("les numéros générés devraient varier")
	}
}

func TestValidateCouponRequest(t *testing.T) {
	tests := []struct {
		name       string
		couponType string
		value      string
		limit      int
		perCust    int
		wantOK     bool
	}{
		{"pourcentage valide", models.CouponTypePercentage, "20", 0, 0, true},
		{"pourcentage 100", models.CouponTypePercentage, "100", 0, 0, true},
		{"pourcentage zéro", models.CouponTypePercentage, "0", 0, 0, false},
		{"pourcentage > 100", models.CouponTypePercentage, "150", 0, 0, false},
		{"montant fixe valide", models.CouponTypeFixedAmount, "10.50", 0, 0, true},
		{"montant fixe zéro", models.CouponTypeFixedAmount, "0", 0, 0, false},
		{"livraison gratuite sans valeur", models.CouponTypeFreeShipping, "0", 0, 0, true},
		{"type inconnu", "BOGO", "10", 0, 0, false},
		{"limite négative", models.CouponTypePercentage, "20", -1, 0, false},
		{"limite par client négative", models.CouponTypePercentage, "20", 0, -1, false},
	}

	for _, tt := range tests {
		msg := validateCouponRequest(tt.couponType, dec(tt.value), tt.limit, tt.perCust)
		if tt.wantOK && msg != "" {
			t.Fatalf("%s: requête valide refusée: %s", tt.name, msg)
		}
		if !tt.wantOK && msg == "" {
			t.Fatalf("%s: requête invalide acceptée", tt.name)
		}
	}
}

func TestShippingCostFor(t *testing.T) {
	tests := []struct {
		option   string
		subtotal string
		want     string
		wantOK   bool
	}{
		{"standard", "30.00", "5.99", true},
		{"standard", "50.00", "0", true}, // seuil de gratuité atteint
		{"standard", "120.00", "0", true},
		{"express", "120.00", "12.99", true}, // pas de gratuité sur express
		{"next_day", "10.00", "19.99", true},
		{"pigeon", "10.00", "0", false},
	}

	for _, tt := range tests {
		got, ok := shippingCostFor(tt.option, dec(tt.subtotal))
		if ok != tt.wantOK {
			t.Fatalf("%s @ %s: ok=%v, expected %v", tt.option, tt.subtotal, ok, tt.wantOK)
		}
		if ok && !got.Equal(dec(tt.want)) {
			t.Fatalf("%s @ %s: got %s, expected %s", tt.option, tt.subtotal, got, tt.want)
		}
	}
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		current, previous, want string
	}{
		{"150", "100", "50"},
		{"50", "100", "-50"},
		{"100", "100", "0"},
		{"42", "0", "100"}, // démarrage : période précédente vide
		{"0", "0", "0"},
	}

	for _, tt := range tests {
		got := growthRate(dec(tt.current), dec(tt.previous))
		if !got.Equal(dec(tt.want)) {
			t.Fatalf("current=%s previous=%s: got %s, expected %s",
				tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := monthWindow(time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC))
	if !start.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("début de mois incorrect: %s", start)
	}
	if !end.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("fin de fenêtre incorrecte: %s", end)
	}
}

func TestReasonMessageCoversValidatorReasons(t *testing.T) {
	reasons := []string{
		pricing.ReasonInactive,
		pricing.ReasonNotYetActive,
		pricing.ReasonExpired,
		pricing.ReasonBelowMinimumPurchase,
		pricing.ReasonUsageLimitExceeded,
		pricing.ReasonPerCustomerLimitReached,
	}

	fallback := reasonMessage("autre chose")
	for _, reason := range reasons {
		msg := reasonMessage(reason)
		if msg == "" || msg == fallback {
			t.Fatalf("raison %q sans message dédié", reason)
		}
	}
}
