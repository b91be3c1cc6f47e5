package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/utils"
)

// AuditStatusChanges middleware pour auditer les changements de statut de
// commande effectués depuis le dashboard admin
func AuditStatusChanges() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}

		// Restaurer le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var requestData map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &requestData); err != nil {
			c.Next()
			return
		}

		if status, exists := requestData["status"]; exists {
			c.Set("audit_status_change", true)
			c.Set("audit_order_id", c.Param("id"))
			c.Set("audit_new_status", status)
		}

		c.Next()

		// Après traitement, enregistrer l'audit si la requête a réussi
		if shouldAudit, exists := c.Get("audit_status_change"); exists && shouldAudit.(bool) {
			if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
				orderID, _ := c.Get("audit_order_id")
				newStatus, _ := c.Get("audit_new_status")
				oldStatus, _ := c.Get("audit_old_status") // posé par le handler

				utils.LogAction(c, utils.ACTION_ORDER_STATUS_CHANGE, "order",
					orderID.(string), oldStatus, newStatus)
			}
		}
	}
}
