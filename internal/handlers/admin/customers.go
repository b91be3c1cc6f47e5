package admin

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// parsePagination valide page et limit (1..100, défaut 1/20).
func parsePagination(pageStr, limitStr string) (page, limit int, err error) {
	page, limit = 1, 20

	if pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page invalide: %q", pageStr)
		}
	}
	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			return 0, 0, fmt.Errorf("limit invalide: %q (1..100)", limitStr)
		}
	}
	return page, limit, nil
}

// GetAllCustomers - liste des clients (admin)
func GetAllCustomers(c *gin.Context) {
	page, limit, err := parsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT customer_id, external_id, email, name, image_url, role, provider, created_at
		FROM customers`).Iter()

	var customers []models.Customer
	var customer models.Customer
	for iter.Scan(&customer.ID, &customer.ExternalID, &customer.Email, &customer.Name,
		&customer.ImageURL, &customer.Role, &customer.Provider, &customer.CreatedAt) {
		customers = append(customers, customer)
		customer = models.Customer{}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture clients: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture clients"})
		return
	}

	total := len(customers)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers[start:end],
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// GetCustomer - détail d'un client avec ses dernières commandes
func GetCustomer(c *gin.Context) {
	customerID := c.Param("id")

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var customer models.Customer
	customer.ID = customerID
	err = session.Query(`SELECT external_id, email, name, image_url, role, provider, created_at
		FROM customers WHERE customer_id = ?`, customerID).Scan(
		&customer.ExternalID, &customer.Email, &customer.Name,
		&customer.ImageURL, &customer.Role, &customer.Provider, &customer.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client introuvable"})
		return
	}

	orders, err := database.ListOrdersByCustomer(customerID, 10)
	if err != nil {
		log.Printf("⚠️ Erreur lecture commandes client %s: %v", customerID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":      customer,
		"recent_orders": orders,
		"orders_count":  len(orders),
	})
}
