package pa

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// GetDashboardStats retourne les statistiques du dashboard admin
func GetDashboardStats(c *gin.Context) {
	orders, err := database.ListAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	totalRevenue := decimal.Zero
	statusCount := make(map[string]int)
	for _, order := range orders {
		statusCount[order.Status]++
		// Le chiffre d'affaires exclut les commandes annulées/remboursées
		if order.Status != models.OrderStatusCancelled && order.Status != models.OrderStatusRefunded {
			totalRevenue = totalRevenue.Add(order.Total)
		}
	}

	averageOrderValue := decimal.Zero
	if len(orders) > 0 {
		averageOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	// Produits : stock bas et ruptures
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var totalProducts, lowStockProducts, outOfStockProducts int
	prodIter := productsSession.Query("SELECT stock, low_stock_threshold FROM products").Iter()
	var stock, threshold int
	for prodIter.Scan(&stock, &threshold) {
		totalProducts++
		if threshold <= 0 {
			threshold = 10
		}
		if stock == 0 {
			outOfStockProducts++
		} else if stock < threshold {
			lowStockProducts++
		}
	}
	if err := prodIter.Close(); err != nil {
		log.Printf("❌ Erreur lecture produits: %v", err)
	}

	// Clients
	customersSession, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var totalCustomers int
	custIter := customersSession.Query("SELECT customer_id FROM customers").Iter()
	var customerID string
	for custIter.Scan(&customerID) {
		totalCustomers++
	}
	if err := custIter.Close(); err != nil {
		log.Printf("❌ Erreur lecture clients: %v", err)
	}

	// Remboursements en attente
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var totalRefunds, pendingRefunds int
	refundIter := ordersSession.Query("SELECT status FROM refunds").Iter()
	var refundStatus string
	for refundIter.Scan(&refundStatus) {
		totalRefunds++
		if refundStatus == "pending" {
			pendingRefunds++
		}
	}
	if err := refundIter.Close(); err != nil {
		log.Printf("❌ Erreur lecture remboursements: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"total":               len(orders),
			"total_revenue":       totalRevenue,
			"average_order_value": averageOrderValue,
			"by_status":           statusCount,
		},
		"products": gin.H{
			"total":        totalProducts,
			"low_stock":    lowStockProducts,
			"out_of_stock": outOfStockProducts,
		},
		"customers": gin.H{
			"total": totalCustomers,
		},
		"refunds": gin.H{
			"total":   totalRefunds,
			"pending": pendingRefunds,
		},
		"generated_at": time.Now(),
	})
}

// monthWindow retourne le début du mois de t et le début du mois suivant.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// growthRate calcule la variation en pourcentage entre deux périodes ;
// une période précédente vide donne 100 si la courante est non vide.
func growthRate(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
}

// GetMonthlyRevenue - chiffre d'affaires du mois courant, mois précédent
// et taux de croissance
func GetMonthlyRevenue(c *gin.Context) {
	orders, err := database.ListAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	now := time.Now()
	currentStart, currentEnd := monthWindow(now)
	previousStart, _ := monthWindow(currentStart.AddDate(0, 0, -1))

	currentRevenue := decimal.Zero
	previousRevenue := decimal.Zero

	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusRefunded {
			continue
		}
		switch {
		case !order.CreatedAt.Before(currentStart) && order.CreatedAt.Before(currentEnd):
			currentRevenue = currentRevenue.Add(order.Total)
		case !order.CreatedAt.Before(previousStart) && order.CreatedAt.Before(currentStart):
			previousRevenue = previousRevenue.Add(order.Total)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"current_month":  currentRevenue,
		"previous_month": previousRevenue,
		"growth_rate":    growthRate(currentRevenue, previousRevenue),
		"month":          currentStart.Format("2006-01"),
	})
}

// GetMonthlyNewCustomers - nouveaux clients du mois et croissance
func GetMonthlyNewCustomers(c *gin.Context) {
	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	currentStart, currentEnd := monthWindow(now)
	previousStart, _ := monthWindow(currentStart.AddDate(0, 0, -1))

	var currentCount, previousCount int
	iter := session.Query("SELECT created_at FROM customers").Iter()
	var createdAt time.Time
	for iter.Scan(&createdAt) {
		switch {
		case !createdAt.Before(currentStart) && createdAt.Before(currentEnd):
			currentCount++
		case !createdAt.Before(previousStart) && createdAt.Before(currentStart):
			previousCount++
		}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture clients: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_month":  currentCount,
		"previous_month": previousCount,
		"growth_rate": growthRate(
			decimal.NewFromInt(int64(currentCount)),
			decimal.NewFromInt(int64(previousCount))),
		"month": currentStart.Format("2006-01"),
	})
}

// GetRecentSales - dernières ventes avec infos client (pour le dashboard)
func GetRecentSales(c *gin.Context) {
	orders, err := database.ListAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	const limit = 10
	if len(orders) > limit {
		orders = orders[:limit]
	}

	type RecentSale struct {
		OrderID       string          `json:"order_id"`
		OrderNumber   string          `json:"order_number"`
		CustomerID    string          `json:"customer_id"`
		CustomerName  string          `json:"customer_name,omitempty"`
		CustomerEmail string          `json:"customer_email,omitempty"`
		Total         decimal.Decimal `json:"total"`
		Status        string          `json:"status"`
		CreatedAt     time.Time       `json:"created_at"`
	}

	sales := make([]RecentSale, 0, len(orders))
	for _, order := range orders {
		sale := RecentSale{
			OrderID:     order.ID.String(),
			OrderNumber: order.OrderNumber,
			CustomerID:  order.CustomerID,
			Total:       order.Total,
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
		}
		if customer, err := cache.GetCustomerFromCache(order.CustomerID); err == nil {
			sale.CustomerName = customer.Name
			sale.CustomerEmail = customer.Email
		}
		sales = append(sales, sale)
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}
