package database

import (
	"fmt"
	"strings"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

const couponColumns = `id, code, description, type, value, min_purchase, max_discount,
	usage_limit, usage_limit_per_customer, usage_count, start_date, end_date,
	is_active, created_by, created_at, updated_at`

// scanCoupon lit une ligne coupon ; les montants sont des colonnes text.
func scanCoupon(scan func(dest ...interface{}) error) (models.Coupon, error) {
	var coupon models.Coupon
	var value, minPurchase, maxDiscount string

	err := scan(&coupon.ID, &coupon.Code, &coupon.Description, &coupon.Type,
		&value, &minPurchase, &maxDiscount,
		&coupon.UsageLimit, &coupon.UsageLimitPerCustomer, &coupon.UsageCount,
		&coupon.StartDate, &coupon.EndDate,
		&coupon.IsActive, &coupon.CreatedBy, &coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		return models.Coupon{}, err
	}

	coupon.Value = decFromText(value)
	coupon.MinPurchase = decPtrFromText(minPurchase)
	coupon.MaxDiscount = decPtrFromText(maxDiscount)
	return coupon, nil
}

// GetCouponByCode récupère un coupon par code (insensible à la casse,
// les codes sont stockés en majuscules). La requête est construite à
// chaque appel : un gocql.Query partagé n'est pas sûr en concurrence,
// et gocql garde de toute façon le statement préparé côté session.
func GetCouponByCode(code string) (models.Coupon, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return models.Coupon{}, err
	}

	query := session.Query(
		"SELECT "+couponColumns+" FROM coupons_by_code WHERE code = ? LIMIT 1",
		strings.ToUpper(code))
	return scanCoupon(query.Scan)
}

func GetCouponByID(id gocql.UUID) (models.Coupon, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return models.Coupon{}, err
	}

	query := session.Query("SELECT "+couponColumns+" FROM coupons WHERE id = ?", id)
	return scanCoupon(query.Scan)
}

// ListCoupons retourne tous les coupons (vue admin).
func ListCoupons() ([]models.Coupon, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query("SELECT " + couponColumns + " FROM coupons").Iter()

	var coupons []models.Coupon
	var coupon models.Coupon
	var value, minPurchase, maxDiscount string
	for iter.Scan(&coupon.ID, &coupon.Code, &coupon.Description, &coupon.Type,
		&value, &minPurchase, &maxDiscount,
		&coupon.UsageLimit, &coupon.UsageLimitPerCustomer, &coupon.UsageCount,
		&coupon.StartDate, &coupon.EndDate,
		&coupon.IsActive, &coupon.CreatedBy, &coupon.CreatedAt, &coupon.UpdatedAt) {
		coupon.Value = decFromText(value)
		coupon.MinPurchase = decPtrFromText(minPurchase)
		coupon.MaxDiscount = decPtrFromText(maxDiscount)
		coupons = append(coupons, coupon)
		coupon = models.Coupon{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return coupons, nil
}

// InsertCoupon écrit le coupon dans la table principale et la table par
// code (lectures storefront par code, sans index secondaire).
func InsertCoupon(coupon models.Coupon) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	const insert = `INSERT INTO %s (id, code, description, type, value, min_purchase, max_discount,
		usage_limit, usage_limit_per_customer, usage_count, start_date, end_date,
		is_active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		coupon.ID, coupon.Code, coupon.Description, coupon.Type,
		decToText(coupon.Value), decPtrToText(coupon.MinPurchase), decPtrToText(coupon.MaxDiscount),
		coupon.UsageLimit, coupon.UsageLimitPerCustomer, coupon.UsageCount,
		coupon.StartDate, coupon.EndDate,
		coupon.IsActive, coupon.CreatedBy, coupon.CreatedAt, coupon.UpdatedAt,
	}

	if err := session.Query(fmt.Sprintf(insert, "coupons"), args...).Exec(); err != nil {
		return err
	}
	return session.Query(fmt.Sprintf(insert, "coupons_by_code"), args...).Exec()
}

// DeleteCoupon supprime le coupon des deux tables.
func DeleteCoupon(id gocql.UUID, code string) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	if err := session.Query("DELETE FROM coupons WHERE id = ?", id).Exec(); err != nil {
		return err
	}
	return session.Query("DELETE FROM coupons_by_code WHERE code = ?", strings.ToUpper(code)).Exec()
}
