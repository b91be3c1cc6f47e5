package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(customerID string) string {
	return "cart:" + customerID
}

// publishCartEvent notifie les websockets ouverts de ce client.
func publishCartEvent(ctx context.Context, customerID, event string) {
	database.Redis.Publish(ctx, cartKey(customerID), event)
}

// GetCart - GET /api/cart
func GetCart(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	data, err := database.Redis.Get(context.Background(), cartKey(customerID)).Result()
	if err != nil || data == "" {
		c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
		return
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart})
}

// AddToCart - POST /api/cart/add
func AddToCart(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID   string `json:"product_id" binding:"required"`
		VariantName string `json:"variant_name"`
		Quantity    int    `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID, err := gocql.ParseUUID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var name, price string
	var stock int
	var isActive bool
	err = session.Query("SELECT name, price, stock, is_active FROM products WHERE id = ?", productID).
		Scan(&name, &price, &stock, &isActive)
	if err != nil || !isActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prix produit invalide"})
		return
	}

	// Variante : prix et nom propres
	if input.VariantName != "" {
		var variantPrice string
		var variantStock int
		err = session.Query(
			"SELECT price, stock FROM product_variants WHERE product_id = ? AND name = ? ALLOW FILTERING",
			productID, input.VariantName).Scan(&variantPrice, &variantStock)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variante introuvable"})
			return
		}
		if d, err := decimal.NewFromString(variantPrice); err == nil {
			unitPrice = d
		}
		stock = variantStock
	}

	if stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock insuffisant", "available": stock})
		return
	}

	item := models.CartItem{
		ProductID:   input.ProductID,
		Name:        name,
		VariantName: input.VariantName,
		Price:       unitPrice,
		Quantity:    input.Quantity,
	}

	ctx := context.Background()
	key := cartKey(customerID)

	data, _ := database.Redis.Get(ctx, key).Result()
	var cart []models.CartItem
	if data != "" {
		_ = json.Unmarshal([]byte(data), &cart)
	}

	found := false
	for i := range cart {
		if cart[i].ProductID == item.ProductID && cart[i].VariantName == item.VariantName {
			cart[i].Quantity += item.Quantity
			cart[i].Price = item.Price // prix courant
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, item)
	}

	jsonData, _ := json.Marshal(cart)
	database.Redis.Set(ctx, key, jsonData, cartTTL)
	publishCartEvent(ctx, customerID, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

// UpdateCartItem - PUT /api/cart/:productId
func UpdateCartItem(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		VariantName string `json:"variant_name"`
		Quantity    int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID := c.Param("productId")
	ctx := context.Background()
	key := cartKey(customerID)

	data, _ := database.Redis.Get(ctx, key).Result()
	if data == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier vide"})
		return
	}

	var cart []models.CartItem
	_ = json.Unmarshal([]byte(data), &cart)

	updated := cart[:0]
	found := false
	for _, item := range cart {
		if item.ProductID == productID && item.VariantName == input.VariantName {
			found = true
			if input.Quantity == 0 {
				continue // quantité 0 = suppression
			}
			item.Quantity = input.Quantity
		}
		updated = append(updated, item)
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article absent du panier"})
		return
	}

	jsonData, _ := json.Marshal(updated)
	database.Redis.Set(ctx, key, jsonData, cartTTL)
	publishCartEvent(ctx, customerID, "updated")

	c.JSON(http.StatusOK, gin.H{"message": "Panier mis à jour", "items": updated})
}

// RemoveFromCart - DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	ctx := context.Background()
	key := cartKey(customerID)

	data, _ := database.Redis.Get(ctx, key).Result()
	if data == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Panier vide"})
		return
	}

	var cart []models.CartItem
	_ = json.Unmarshal([]byte(data), &cart)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}

	jsonData, _ := json.Marshal(newCart)
	database.Redis.Set(ctx, key, jsonData, cartTTL)
	publishCartEvent(ctx, customerID, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   newCart,
	})
}

// ClearCart - DELETE /api/cart/clear
func ClearCart(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := context.Background()
	if err := database.Redis.Del(ctx, cartKey(customerID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	publishCartEvent(ctx, customerID, "cleared")

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
