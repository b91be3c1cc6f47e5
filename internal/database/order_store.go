package database

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

const orderColumns = `id, order_number, customer_id, payment_intent_id, items,
	subtotal, shipping_cost, tax, discount, total, refund_amount,
	coupon_id, coupon_code, status, payment_status, payment_method,
	tracking_number, admin_note, cancel_reason,
	shipping_full_name, shipping_phone, shipping_line1, shipping_line2,
	shipping_city, shipping_state, shipping_postal_code, shipping_country,
	shipped_at, delivered_at, cancelled_at, refunded_at, created_at, updated_at`

// InsertOrder écrit la commande complète ; les lignes (instantanés
// produit) sont sérialisées en JSON dans une colonne text.
func InsertOrder(order models.Order) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	var couponID interface{}
	if order.CouponID != nil {
		couponID = *order.CouponID
	}

	return session.Query(`INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.OrderNumber, order.CustomerID, order.PaymentIntentID, string(itemsJSON),
		decToText(order.Subtotal), decToText(order.ShippingCost), decToText(order.Tax),
		decToText(order.Discount), decToText(order.Total), decPtrToText(order.RefundAmount),
		couponID, order.CouponCode, order.Status, order.PaymentStatus, order.PaymentMethod,
		order.TrackingNumber, order.AdminNote, order.CancelReason,
		order.ShippingFullName, order.ShippingPhone, order.ShippingLine1, order.ShippingLine2,
		order.ShippingCity, order.ShippingState, order.ShippingPostalCode, order.ShippingCountry,
		order.ShippedAt, order.DeliveredAt, order.CancelledAt, order.RefundedAt,
		order.CreatedAt, order.UpdatedAt,
	).Exec()
}

func scanOrderRow(scan func(dest ...interface{}) error) (models.Order, error) {
	var order models.Order
	var itemsJSON string
	var subtotal, shippingCost, tax, discount, total, refundAmount string
	var couponID gocql.UUID

	err := scan(&order.ID, &order.OrderNumber, &order.CustomerID, &order.PaymentIntentID, &itemsJSON,
		&subtotal, &shippingCost, &tax, &discount, &total, &refundAmount,
		&couponID, &order.CouponCode, &order.Status, &order.PaymentStatus, &order.PaymentMethod,
		&order.TrackingNumber, &order.AdminNote, &order.CancelReason,
		&order.ShippingFullName, &order.ShippingPhone, &order.ShippingLine1, &order.ShippingLine2,
		&order.ShippingCity, &order.ShippingState, &order.ShippingPostalCode, &order.ShippingCountry,
		&order.ShippedAt, &order.DeliveredAt, &order.CancelledAt, &order.RefundedAt,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return models.Order{}, err
	}

	order.Subtotal = decFromText(subtotal)
	order.ShippingCost = decFromText(shippingCost)
	order.Tax = decFromText(tax)
	order.Discount = decFromText(discount)
	order.Total = decFromText(total)
	order.RefundAmount = decPtrFromText(refundAmount)

	var zero gocql.UUID
	if couponID != zero {
		id := couponID
		order.CouponID = &id
	}

	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			return models.Order{}, err
		}
	}
	return order, nil
}

func GetOrderByID(id gocql.UUID) (models.Order, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return models.Order{}, err
	}

	query := session.Query("SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
	return scanOrderRow(query.Scan)
}

// OrderExistsForPaymentIntent sert à l'idempotence du webhook Stripe :
// un même payment_intent.succeeded peut être livré plusieurs fois.
func OrderExistsForPaymentIntent(paymentIntentID string) (bool, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return false, err
	}

	var count int
	err = session.Query(
		"SELECT COUNT(*) FROM orders WHERE payment_intent_id = ? ALLOW FILTERING",
		paymentIntentID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListOrdersByCustomer retourne les commandes d'un client, les plus
// récentes en premier. limit ≤ 0 signifie sans limite.
func ListOrdersByCustomer(customerID string, limit int) ([]models.Order, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(
		"SELECT "+orderColumns+" FROM orders WHERE customer_id = ? ALLOW FILTERING",
		customerID).Iter()

	orders, err := collectOrders(iter)
	if err != nil {
		return nil, err
	}

	sortOrdersByCreatedAtDesc(orders)
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// ListAllOrders retourne toutes les commandes (vue admin), les plus
// récentes en premier.
func ListAllOrders() ([]models.Order, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query("SELECT " + orderColumns + " FROM orders").Iter()
	orders, err := collectOrders(iter)
	if err != nil {
		return nil, err
	}

	sortOrdersByCreatedAtDesc(orders)
	return orders, nil
}

func collectOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order

	for {
		order, err := scanOrderRow(func(dest ...interface{}) error {
			if !iter.Scan(dest...) {
				return gocql.ErrNotFound
			}
			return nil
		})
		if err != nil {
			break
		}
		orders = append(orders, order)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

func sortOrdersByCreatedAtDesc(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// SaveOrderTransition persiste l'état d'une commande après une
// transition de statut validée (statut, horodatages, remboursement).
func SaveOrderTransition(order models.Order) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	return session.Query(`UPDATE orders SET
		status = ?, payment_status = ?, tracking_number = ?, admin_note = ?,
		cancel_reason = ?, refund_amount = ?,
		shipped_at = ?, delivered_at = ?, cancelled_at = ?, refunded_at = ?,
		updated_at = ? WHERE id = ?`,
		order.Status, order.PaymentStatus, order.TrackingNumber, order.AdminNote,
		order.CancelReason, decPtrToText(order.RefundAmount),
		order.ShippedAt, order.DeliveredAt, order.CancelledAt, order.RefundedAt,
		time.Now(), order.ID,
	).Exec()
}
