package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

// Codes de refus d'applicabilité d'un coupon.
const (
	ReasonExpired                = "Expired"
	ReasonNotYetActive           = "NotYetActive"
	ReasonInactive               = "Inactive"
	ReasonBelowMinimumPurchase   = "BelowMinimumPurchase"
	ReasonUsageLimitExceeded     = "UsageLimitExceeded"
	ReasonPerCustomerLimitReached = "UsageLimitPerCustomerExceeded"
)

// Verdict est le résultat d'une validation de coupon : applicable ou non,
// avec un code de raison machine. Aucun effet de bord.
type Verdict struct {
	Applicable bool
	Reason     string
}

func accept() Verdict              { return Verdict{Applicable: true} }
func reject(reason string) Verdict { return Verdict{Reason: reason} }

// ValidateCoupon vérifie l'applicabilité d'un coupon pour un sous-total
// donné. customerUsage est le nombre d'utilisations antérieures de ce
// coupon par ce client (fourni par l'historique de commandes, collaborateur
// externe à ce package).
func ValidateCoupon(coupon models.Coupon, subtotal decimal.Decimal, customerUsage int, now time.Time) Verdict {
	if !coupon.IsActive {
		return reject(ReasonInactive)
	}
	if now.Before(coupon.StartDate) {
		return reject(ReasonNotYetActive)
	}
	if now.After(coupon.EndDate) {
		return reject(ReasonExpired)
	}
	if coupon.MinPurchase != nil && subtotal.LessThan(*coupon.MinPurchase) {
		return reject(ReasonBelowMinimumPurchase)
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return reject(ReasonUsageLimitExceeded)
	}
	if coupon.UsageLimitPerCustomer > 0 && customerUsage >= coupon.UsageLimitPerCustomer {
		return reject(ReasonPerCustomerLimitReached)
	}
	return accept()
}

// ComputeDiscount calcule la réduction (≥ 0) pour un coupon déjà validé.
// Pour FREE_SHIPPING la réduction vaut le coût de livraison (elle annule
// la livraison, pas le sous-total).
func ComputeDiscount(coupon models.Coupon, subtotal, shippingCost decimal.Decimal) decimal.Decimal {
	switch coupon.Type {
	case models.CouponTypePercentage:
		discount := subtotal.Mul(coupon.Value.Div(hundred))
		if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
			discount = *coupon.MaxDiscount
		}
		return RoundMoney(discount)
	case models.CouponTypeFixedAmount:
		// Jamais au-delà du sous-total, pour ne pas produire de total négatif
		discount := coupon.Value
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
		return RoundMoney(discount)
	case models.CouponTypeFreeShipping:
		return RoundMoney(shippingCost)
	}
	return decimal.Zero
}
