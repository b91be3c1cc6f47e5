package admin

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
	"velora_back_end/internal/utils"
)

// GetAllOrders - liste paginée des commandes, filtre par statut
func GetAllOrders(c *gin.Context) {
	page, limit, err := parsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allOrders, err := database.ListAllOrders()
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := allOrders[:0]
		for _, order := range allOrders {
			if order.Status == status {
				filtered = append(filtered, order)
			}
		}
		allOrders = filtered
	}

	total := len(allOrders)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": allOrders[start:end],
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// GetOrder - détail d'une commande (admin)
func GetOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := database.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder - mise à jour admin : statut (via la table de transitions),
// numéro de suivi, note interne. Transition illégale → 409.
func UpdateOrder(c *gin.Context) {
	var req struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"tracking_number"`
		AdminNote      string `json:"admin_note"`
		CancelReason   string `json:"cancel_reason"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := database.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	oldStatus := order.Status
	c.Set("audit_old_status", oldStatus)

	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.AdminNote != "" {
		order.AdminNote = req.AdminNote
	}

	statusChanged := req.Status != "" && req.Status != oldStatus
	if statusChanged {
		transition := orders.Transition{
			To:           req.Status,
			CancelReason: req.CancelReason,
			Now:          time.Now(),
		}
		if err := orders.Apply(&order, transition); err != nil {
			if errors.Is(err, orders.ErrCancelReasonRequired) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Un motif d'annulation est requis"})
				return
			}
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transition de statut invalide",
				"from":  oldStatus,
				"to":    req.Status,
			})
			return
		}
	}

	if err := database.SaveOrderTransition(order); err != nil {
		log.Printf("❌ Erreur mise à jour commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	log.Printf("✅ Commande %s mise à jour: %s → %s", order.OrderNumber, oldStatus, order.Status)

	if statusChanged {
		// L'audit du changement de statut est posé par AuditStatusChanges

		// Notification email au client (async)
		if customer, err := cache.GetCustomerFromCache(order.CustomerID); err == nil {
			orderCopy := order
			go func() {
				if err := utils.SendOrderStatusEmail(orderCopy, customer.Email, orderCopy.Status); err != nil {
					log.Printf("⚠️ Erreur envoi email notification: %v", err)
				}
			}()
		}
	} else {
		utils.LogAction(c, utils.ACTION_ORDER_UPDATE, "order", orderID.String(), nil, req)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"order":      order,
		"updated_at": order.UpdatedAt,
	})
}

// CancelOrder - annulation admin, motif obligatoire
func CancelOrder(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required,min=5,max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un motif d'annulation est requis"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := database.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	oldStatus := order.Status
	c.Set("audit_old_status", oldStatus)

	transition := orders.Transition{
		To:           models.OrderStatusCancelled,
		CancelReason: req.Reason,
		Now:          time.Now(),
	}
	if err := orders.Apply(&order, transition); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Cette commande ne peut plus être annulée",
			"from":  oldStatus,
		})
		return
	}

	if err := database.SaveOrderTransition(order); err != nil {
		log.Printf("❌ Erreur annulation commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur annulation commande"})
		return
	}

	utils.LogAction(c, utils.ACTION_ORDER_CANCEL, "order", orderID.String(),
		gin.H{"status": oldStatus}, gin.H{"status": order.Status, "reason": req.Reason})
	log.Printf("✅ Commande %s annulée: %s", order.OrderNumber, req.Reason)

	if customer, err := cache.GetCustomerFromCache(order.CustomerID); err == nil {
		orderCopy := order
		go utils.SendOrderStatusEmail(orderCopy, customer.Email, orderCopy.Status)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}
