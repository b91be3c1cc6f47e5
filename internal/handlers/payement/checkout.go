package pa

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/pricing"
)

// Checkout assemble le total d'une commande (sous-total, coupon,
// livraison, taxe) et crée le PaymentIntent Stripe. La commande
// elle-même n'est écrite qu'au webhook payment_intent.succeeded.
func Checkout(c *gin.Context) {
	var req struct {
		AddressID      string `json:"address_id" binding:"required"`
		ShippingOption string `json:"shipping_option"`
		CouponCode     string `json:"coupon_code"` // optionnel
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	customerID := c.GetString("customer_id")
	email := c.GetString("email")
	if customerID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	if req.ShippingOption == "" {
		req.ShippingOption = "standard"
	}

	// 1. Panier depuis Redis
	ctx := context.Background()
	cartData, err := database.Redis.Get(ctx, "cart:"+customerID).Result()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
		return
	}

	var cartItems []models.CartItem
	if err := json.Unmarshal([]byte(cartData), &cartItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// 2. L'adresse existe et appartient au client
	address, ok := loadOwnedAddress(c, req.AddressID, customerID)
	if !ok {
		return
	}

	// 3. Stock et prix courants pour chaque produit
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	for i, item := range cartItems {
		productID, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide: " + item.ProductID})
			return
		}

		var stock int
		var name, price string
		err = productsSession.Query(
			"SELECT stock, name, price FROM products WHERE id = ?", productID).
			Scan(&stock, &name, &price)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + item.ProductID})
			return
		}

		if stock < item.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   name,
				"available": stock,
				"requested": item.Quantity,
			})
			return
		}

		// Rafraîchit le panier avec les données actuelles
		cartItems[i].Name = name
		if d, err := decimal.NewFromString(price); err == nil {
			cartItems[i].Price = d
		}
	}

	// 4. Sous-total
	subtotal := pricing.Subtotal(cartItems)

	// 5. Livraison
	shippingCost, ok := shippingCostFor(req.ShippingOption, subtotal)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Option de livraison inconnue"})
		return
	}

	// 6. Coupon (si fourni)
	discount := decimal.Zero
	var couponCode, couponID, couponType string

	if req.CouponCode != "" {
		validation := validateCouponForCustomer(req.CouponCode, subtotal, shippingCost, customerID)
		if !validation.IsValid {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  validation.ErrorMessage,
				"reason": validation.Reason,
			})
			return
		}

		coupon, err := database.GetCouponByCode(req.CouponCode)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		discount = validation.Discount
		couponCode = validation.Code
		couponID = coupon.ID.String()
		couponType = validation.Type
		log.Printf("✅ Coupon appliqué: %s (%s€ de réduction)", couponCode, discount.StringFixed(2))
	}

	// 7. Taxe et total final
	tax := pricing.Tax(subtotal, discount, taxRate())
	total := pricing.OrderTotal(subtotal, shippingCost, tax, discount)

	// 8. Tout ce que le webhook doit savoir passe par les metadata Stripe
	cartJSON, err := json.Marshal(cartItems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sérialisation panier"})
		return
	}
	addressJSON, _ := json.Marshal(address)

	metadata := map[string]string{
		"customer_id":   customerID,
		"email":         email,
		"cart":          string(cartJSON),
		"address":       string(addressJSON),
		"subtotal":      subtotal.StringFixed(2),
		"shipping_cost": shippingCost.StringFixed(2),
		"tax":           tax.StringFixed(2),
		"discount":      discount.StringFixed(2),
	}
	if couponCode != "" {
		metadata["coupon_code"] = couponCode
		metadata["coupon_id"] = couponID
		metadata["coupon_type"] = couponType
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(total.Mul(decimal.NewFromInt(100)).IntPart()),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement", "details": err.Error()})
		return
	}

	log.Printf("💳 Checkout créé: %s (%s€) pour %s", intent.ID, total.StringFixed(2), email)

	c.JSON(http.StatusOK, gin.H{
		"client_secret": intent.ClientSecret,
		"payment_id":    intent.ID,
		"subtotal":      subtotal,
		"shipping_cost": shippingCost,
		"tax":           tax,
		"discount":      discount,
		"total":         total,
		"currency":      "eur",
		"items_count":   len(cartItems),
	})
}

// loadOwnedAddress charge une adresse et vérifie qu'elle appartient au
// client ; répond elle-même en cas d'échec.
func loadOwnedAddress(c *gin.Context, addressID, customerID string) (models.Address, bool) {
	id, err := gocql.ParseUUID(addressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return models.Address{}, false
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return models.Address{}, false
	}

	var address models.Address
	err = session.Query(`SELECT id, customer_id, full_name, phone, line1, line2, city, state, postal_code, country, is_default
		FROM addresses WHERE id = ?`, id).Scan(
		&address.ID, &address.CustomerID, &address.FullName, &address.Phone,
		&address.Line1, &address.Line2, &address.City, &address.State,
		&address.PostalCode, &address.Country, &address.IsDefault)
	if err != nil || address.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Adresse introuvable ou non autorisée"})
		return models.Address{}, false
	}
	return address, true
}
