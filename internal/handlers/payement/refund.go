package pa

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	striperefund "github.com/stripe/stripe-go/v83/refund"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
	"velora_back_end/internal/utils"
)

// refundEligible : la commande doit être payée ET dans un statut depuis
// lequel REFUNDED est atteignable, sinon la demande serait refusée de
// toute façon au traitement.
func refundEligible(order models.Order) bool {
	return order.PaymentStatus == models.PaymentStatusPaid &&
		orders.CanTransition(order.Status, models.OrderStatusRefunded)
}

// RequestRefund permet à un client de demander un remboursement sur
// une de ses commandes.
func RequestRefund(c *gin.Context) {
	customerID := c.GetString("customer_id")

	var req struct {
		Reason string `json:"reason" binding:"required,min=10,max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := database.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}

	if !refundEligible(order) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande n'est pas éligible au remboursement"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Une seule demande par commande
	var existingID gocql.UUID
	err = session.Query("SELECT id FROM refunds WHERE order_id = ? ALLOW FILTERING", orderID).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Une demande de remboursement existe déjà pour cette commande"})
		return
	}

	refundID := gocql.TimeUUID()
	now := time.Now()

	err = session.Query(`INSERT INTO refunds (id, order_id, customer_id, reason, status, refund_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		refundID, orderID, customerID, req.Reason, "pending", order.Total.StringFixed(2), now).Exec()
	if err != nil {
		log.Printf("❌ Erreur création demande remboursement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création demande"})
		return
	}

	log.Printf("💰 Demande de remboursement créée: %s pour commande %s", refundID, order.OrderNumber)

	if customer, err := cache.GetCustomerFromCache(customerID); err == nil {
		go utils.SendRefundRequestEmail(customer.Email, order.OrderNumber, req.Reason)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Demande de remboursement créée",
		"refund": models.Refund{
			ID:           refundID,
			OrderID:      orderID,
			CustomerID:   customerID,
			Reason:       req.Reason,
			Status:       "pending",
			RefundAmount: order.Total,
			CreatedAt:    now,
		},
	})
}

// ProcessRefund traite une demande de remboursement (admin) :
// approve → remboursement Stripe + transition de la commande vers
// REFUNDED, reject → simple clôture de la demande.
func ProcessRefund(c *gin.Context) {
	var req struct {
		Action string           `json:"action" binding:"required"` // approve, reject
		Amount *decimal.Decimal `json:"amount"`                    // partiel, défaut: montant demandé
		Note   string           `json:"note"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if req.Action != "approve" && req.Action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action invalide (approve ou reject)"})
		return
	}

	refundID, err := gocql.ParseUUID(c.Param("refundId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID remboursement invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var orderID gocql.UUID
	var refundCustomerID, refundAmountText, refundStatus string
	err = session.Query("SELECT order_id, customer_id, refund_amount, status FROM refunds WHERE id = ?",
		refundID).Scan(&orderID, &refundCustomerID, &refundAmountText, &refundStatus)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Demande de remboursement introuvable"})
		return
	}

	if refundStatus != "pending" {
		c.JSON(http.StatusConflict, gin.H{"error": "Cette demande a déjà été traitée"})
		return
	}

	order, err := database.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}

	now := time.Now()

	if req.Action == "reject" {
		err = session.Query("UPDATE refunds SET status = ?, updated_at = ? WHERE id = ?",
			"rejected", now, refundID).Exec()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour"})
			return
		}

		if customer, err := cache.GetCustomerFromCache(refundCustomerID); err == nil {
			go utils.SendRefundRejectedEmail(customer.Email, order.OrderNumber, req.Note)
		}

		utils.LogAction(c, utils.ACTION_ORDER_REFUND, "refund", refundID.String(),
			gin.H{"status": "pending"}, gin.H{"status": "rejected"})
		log.Printf("❌ Remboursement rejeté: %s", refundID)
		c.JSON(http.StatusOK, gin.H{"message": "Demande de remboursement rejetée", "status": "rejected"})
		return
	}

	amount, err := decimal.NewFromString(refundAmountText)
	if err != nil {
		amount = order.Total
	}
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(order.Total) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant de remboursement invalide"})
		return
	}

	// La transition doit être légale avant de toucher à Stripe
	oldStatus := order.Status
	transition := orders.Transition{
		To:           models.OrderStatusRefunded,
		RefundAmount: &amount,
		Now:          now,
	}
	if err := orders.Apply(&order, transition); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Transition de statut invalide",
			"from":   oldStatus,
			"to":     models.OrderStatusRefunded,
			"detail": err.Error(),
		})
		return
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(order.PaymentIntentID),
		Amount:        stripe.Int64(amount.Mul(decimal.NewFromInt(100)).IntPart()),
		Reason:        stripe.String("requested_by_customer"),
	}

	stripeRefund, err := striperefund.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe refund: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement remboursement Stripe", "details": err.Error()})
		return
	}

	if err := database.SaveOrderTransition(order); err != nil {
		log.Printf("⚠️ Erreur persistance transition: %v", err)
	}

	err = session.Query("UPDATE refunds SET status = ?, stripe_refund_id = ?, updated_at = ? WHERE id = ?",
		"approved", stripeRefund.ID, now, refundID).Exec()
	if err != nil {
		log.Printf("⚠️ Erreur mise à jour refund: %v", err)
	}

	if customer, err := cache.GetCustomerFromCache(refundCustomerID); err == nil {
		go utils.SendRefundApprovedEmail(customer.Email, order.OrderNumber, amount)
	}

	utils.LogAction(c, utils.ACTION_ORDER_REFUND, "order", orderID.String(),
		gin.H{"status": oldStatus}, gin.H{"status": order.Status, "refund_amount": amount})
	log.Printf("✅ Remboursement traité: %s (Stripe: %s)", refundID, stripeRefund.ID)

	c.JSON(http.StatusOK, gin.H{
		"message":          "Remboursement traité avec succès",
		"status":           "approved",
		"stripe_refund_id": stripeRefund.ID,
		"amount":           amount,
	})
}

// GetMyRefunds - demandes de remboursement du client connecté
func GetMyRefunds(c *gin.Context) {
	customerID := c.GetString("customer_id")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, order_id, reason, status, refund_amount, stripe_refund_id, created_at, updated_at
		FROM refunds WHERE customer_id = ? ALLOW FILTERING`, customerID).Iter()

	refunds, err := collectRefunds(iter, customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture remboursements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"refunds": refunds, "count": len(refunds)})
}

// GetAllRefunds - toutes les demandes (admin)
func GetAllRefunds(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, order_id, customer_id, reason, status, refund_amount, stripe_refund_id, created_at, updated_at
		FROM refunds`).Iter()

	var refunds []models.Refund
	var refund models.Refund
	var amountText string

	for iter.Scan(&refund.ID, &refund.OrderID, &refund.CustomerID, &refund.Reason, &refund.Status,
		&amountText, &refund.StripeRefundID, &refund.CreatedAt, &refund.UpdatedAt) {
		refund.RefundAmount, _ = decimal.NewFromString(amountText)
		refunds = append(refunds, refund)
		refund = models.Refund{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture remboursements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"refunds": refunds, "count": len(refunds)})
}

func collectRefunds(iter *gocql.Iter, customerID string) ([]models.Refund, error) {
	var refunds []models.Refund
	var refund models.Refund
	var amountText string

	for iter.Scan(&refund.ID, &refund.OrderID, &refund.Reason, &refund.Status,
		&amountText, &refund.StripeRefundID, &refund.CreatedAt, &refund.UpdatedAt) {
		refund.CustomerID = customerID
		refund.RefundAmount, _ = decimal.NewFromString(amountText)
		refunds = append(refunds, refund)
		refund = models.Refund{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return refunds, nil
}
