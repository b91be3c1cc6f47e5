package database

import "github.com/shopspring/decimal"

// Les montants sont stockés en colonnes text (représentation décimale
// exacte) : gocql ne sait pas marshaler decimal.Decimal nativement.

func decToText(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func decFromText(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decPtrToText(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func decPtrFromText(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
