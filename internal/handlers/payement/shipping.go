package pa

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
)

func freeShippingThreshold() decimal.Decimal {
	if raw := os.Getenv("FREE_SHIPPING_THRESHOLD"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			return d
		}
	}
	return decimal.NewFromInt(50)
}

func shippingOptions() []models.ShippingOption {
	return []models.ShippingOption{
		{
			ID:            "standard",
			Name:          "Livraison Standard",
			Description:   "Livraison en 5-7 jours ouvrés",
			Price:         decimal.RequireFromString("5.99"),
			EstimatedDays: 7,
		},
		{
			ID:            "express",
			Name:          "Livraison Express",
			Description:   "Livraison en 2-3 jours ouvrés",
			Price:         decimal.RequireFromString("12.99"),
			EstimatedDays: 3,
		},
		{
			ID:            "next_day",
			Name:          "Livraison 24h",
			Description:   "Livraison le lendemain avant 18h",
			Price:         decimal.RequireFromString("19.99"),
			EstimatedDays: 1,
		},
	}
}

// shippingCostFor retourne le coût de l'option choisie, seuil de
// gratuité appliqué sur l'option standard.
func shippingCostFor(optionID string, subtotal decimal.Decimal) (decimal.Decimal, bool) {
	for _, option := range shippingOptions() {
		if option.ID != optionID {
			continue
		}
		if option.ID == "standard" && subtotal.GreaterThanOrEqual(freeShippingThreshold()) {
			return decimal.Zero, true
		}
		return option.Price, true
	}
	return decimal.Zero, false
}

// GetShippingOptions retourne les options de livraison disponibles
func GetShippingOptions(c *gin.Context) {
	cartTotal := decimal.Zero
	if raw := c.Query("cart_total"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			cartTotal = d
		}
	}

	threshold := freeShippingThreshold()
	isFree := cartTotal.GreaterThanOrEqual(threshold)

	options := shippingOptions()
	if isFree {
		options[0].Price = decimal.Zero
		options[0].Name = "Livraison Standard Gratuite"
	}

	c.JSON(http.StatusOK, models.ShippingCalculation{
		Options:       options,
		FreeThreshold: threshold,
		CartTotal:     cartTotal,
		IsFree:        isFree,
	})
}
