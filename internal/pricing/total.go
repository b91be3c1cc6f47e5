package pricing

import (
	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

// Subtotal calcule la somme des lignes du panier (prix unitaire × quantité).
func Subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return RoundMoney(total)
}

// Tax applique le taux plat sur le sous-total net de réduction.
func Tax(subtotal, discount, rate decimal.Decimal) decimal.Decimal {
	base := ClampFloor(subtotal.Sub(discount), decimal.Zero)
	return RoundMoney(base.Mul(rate))
}

// OrderTotal assemble le total final :
// total = sous-total + livraison + taxe − réduction, borné à zéro
// (jamais de montant à payer négatif).
func OrderTotal(subtotal, shippingCost, tax, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shippingCost).Add(tax).Sub(discount)
	return RoundMoney(ClampFloor(total, decimal.Zero))
}
