package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
)

// GetMyProfile - GET /api/me (lecture via cache Redis)
func GetMyProfile(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	customer, err := cache.GetCustomerFromCache(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client introuvable"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateMyProfile - PUT /api/me (nom et avatar seulement, l'email vient
// du fournisseur d'identité)
func UpdateMyProfile(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var req struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("UPDATE customers SET name = ?, image_url = ? WHERE customer_id = ?",
		req.Name, req.ImageURL, customerID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	cache.InvalidateCustomerCache(customerID)

	c.JSON(http.StatusOK, gin.H{"message": "Profil mis à jour"})
}
