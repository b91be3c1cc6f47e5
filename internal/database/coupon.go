package database

import (
	"errors"
	"log"
	"time"

	"github.com/gocql/gocql"
)

// ErrCouponExhausted : la limite globale d'utilisation est atteinte au
// moment de l'écriture (même si la validation était passée juste avant).
var ErrCouponExhausted = errors.New("coupon usage limit reached")

const consumeMaxAttempts = 5

// canConsume : une limite de 0 signifie "illimité".
func canConsume(usageCount, usageLimit int) bool {
	return usageLimit <= 0 || usageCount < usageLimit
}

// ConsumeCoupon incrémente usage_count de façon conditionnelle et atomique
// via une transaction légère (compare-and-set sur la valeur lue). Deux
// checkouts simultanés sur un coupon presque épuisé ne peuvent pas tous
// les deux réussir : un seul CAS s'applique, l'autre relit et constate la
// limite. C'est l'unique chemin d'écriture du compteur — jamais de
// lecture-puis-écriture séparées ailleurs.
func ConsumeCoupon(couponID gocql.UUID) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	for attempt := 0; attempt < consumeMaxAttempts; attempt++ {
		var usageCount, usageLimit int
		err := session.Query(
			"SELECT usage_count, usage_limit FROM coupons WHERE id = ?",
			couponID).Scan(&usageCount, &usageLimit)
		if err != nil {
			return err
		}

		if !canConsume(usageCount, usageLimit) {
			return ErrCouponExhausted
		}

		var prevCount int
		applied, err := session.Query(
			"UPDATE coupons SET usage_count = ? WHERE id = ? IF usage_count = ?",
			usageCount+1, couponID, usageCount).ScanCAS(&prevCount)
		if err != nil {
			return err
		}
		if applied {
			// Propagation best-effort vers la table par code ; seule la
			// table coupons fait autorité, le CAS final protège la limite.
			var code string
			if err := session.Query("SELECT code FROM coupons WHERE id = ?", couponID).Scan(&code); err == nil {
				_ = session.Query("UPDATE coupons_by_code SET usage_count = ? WHERE code = ?",
					usageCount+1, code).Exec()
			}
			return nil
		}
		// CAS perdu face à un checkout concurrent, on relit et on retente
		log.Printf("⚠️ CAS coupon perdu (tentative %d), usage_count attendu=%d réel=%d",
			attempt+1, usageCount, prevCount)
	}

	return errors.New("trop de contention sur le coupon, réessayez")
}

// canRelease : on ne décrémente jamais un compteur déjà à zéro.
func canRelease(usageCount int) bool {
	return usageCount > 0
}

// ReleaseCoupon rend une consommation quand la commande n'a finalement
// pas pu être écrite. Même boucle CAS que ConsumeCoupon, en sens
// inverse.
func ReleaseCoupon(couponID gocql.UUID) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	for attempt := 0; attempt < consumeMaxAttempts; attempt++ {
		var usageCount int
		if err := session.Query(
			"SELECT usage_count FROM coupons WHERE id = ?",
			couponID).Scan(&usageCount); err != nil {
			return err
		}

		if !canRelease(usageCount) {
			return nil
		}

		var prevCount int
		applied, err := session.Query(
			"UPDATE coupons SET usage_count = ? WHERE id = ? IF usage_count = ?",
			usageCount-1, couponID, usageCount).ScanCAS(&prevCount)
		if err != nil {
			return err
		}
		if applied {
			var code string
			if err := session.Query("SELECT code FROM coupons WHERE id = ?", couponID).Scan(&code); err == nil {
				_ = session.Query("UPDATE coupons_by_code SET usage_count = ? WHERE code = ?",
					usageCount-1, code).Exec()
			}
			return nil
		}
		log.Printf("⚠️ CAS libération coupon perdu (tentative %d), usage_count attendu=%d réel=%d",
			attempt+1, usageCount, prevCount)
	}

	return errors.New("trop de contention sur le coupon, libération abandonnée")
}

// RecordCouponUsage trace une consommation (coupon, client, commande) pour
// le contrôle de la limite par client.
func RecordCouponUsage(couponID gocql.UUID, customerID string, orderID gocql.UUID) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	return session.Query(`INSERT INTO coupon_usage (id, coupon_id, customer_id, order_id, used_at)
		VALUES (?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), couponID, customerID, orderID, time.Now()).Exec()
}

// CountCustomerCouponUsage retourne le nombre d'utilisations antérieures
// d'un coupon par un client donné (collaborateur du validateur).
func CountCustomerCouponUsage(couponID gocql.UUID, customerID string) (int, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return 0, err
	}

	var count int
	err = session.Query(
		"SELECT COUNT(*) FROM coupon_usage WHERE coupon_id = ? AND customer_id = ?",
		couponID, customerID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CouponHasUsages indique si un coupon est référencé par au moins une
// commande ; utilisé pour bloquer la suppression.
func CouponHasUsages(couponID gocql.UUID) (bool, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return false, err
	}

	var count int
	err = session.Query(
		"SELECT COUNT(*) FROM coupon_usage WHERE coupon_id = ?",
		couponID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
