package pricing

import "github.com/shopspring/decimal"

// Toute l'arithmétique monétaire passe par decimal (virgule fixe) pour
// éviter les erreurs d'arrondi du flottant binaire. La conversion vers un
// format d'affichage se fait côté présentation, jamais ici.

var (
	hundred = decimal.NewFromInt(100)
)

// RoundMoney arrondit au centime (2 décimales), arrondi supérieur à
// mi-chemin. Les montants manipulés ici sont toujours ≥ 0, donc
// l'arrondi "away from zero" de decimal.Round équivaut au half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampFloor retourne d borné à min (jamais en dessous).
func ClampFloor(d, min decimal.Decimal) decimal.Decimal {
	if d.LessThan(min) {
		return min
	}
	return d
}
