package pa

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/pricing"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePagination valide page et limit (1..100, défaut 1/20).
func parsePagination(pageStr, limitStr string) (page, limit int, err error) {
	page, limit = 1, defaultPageLimit

	if pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page invalide: %q", pageStr)
		}
	}
	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxPageLimit {
			return 0, 0, fmt.Errorf("limit invalide: %q (1..%d)", limitStr, maxPageLimit)
		}
	}
	return page, limit, nil
}

// paginate découpe une tranche déjà triée.
func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// generateOrderNumber produit un numéro lisible unique, ex: VLR-20260831-A3F2C1
func generateOrderNumber(now time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("VLR-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
}

// taxRate lit le taux de TVA plat depuis l'env (ex: "0.21"), 0 si absent.
func taxRate() decimal.Decimal {
	raw := os.Getenv("TAX_RATE")
	if raw == "" {
		return decimal.Zero
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

// reasonMessage traduit un code de refus du validateur en message client.
func reasonMessage(reason string) string {
	switch reason {
	case pricing.ReasonInactive:
		return "Ce coupon n'est plus actif"
	case pricing.ReasonNotYetActive:
		return "Ce coupon n'est pas encore valide"
	case pricing.ReasonExpired:
		return "Ce coupon a expiré"
	case pricing.ReasonBelowMinimumPurchase:
		return "Le montant minimum d'achat n'est pas atteint"
	case pricing.ReasonUsageLimitExceeded:
		return "Ce coupon a atteint sa limite d'utilisation"
	case pricing.ReasonPerCustomerLimitReached:
		return "Vous avez déjà utilisé ce coupon le nombre maximum de fois"
	default:
		return "Code coupon invalide"
	}
}
