package pa

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// StripeWebhook reçoit les événements Stripe (signature vérifiée).
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Println("❌ JSON invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

func handleStripeEvent(event stripe.Event) {
	if event.Type != "payment_intent.succeeded" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ Erreur décodage PaymentIntent:", err)
		return
	}

	customerID := pi.Metadata["customer_id"]
	customerEmail := pi.Metadata["email"]
	cartData := pi.Metadata["cart"]

	if customerID == "" || customerEmail == "" || cartData == "" {
		log.Println("⚠️ Métadonnées incomplètes, commande ignorée")
		return
	}

	// Idempotence : Stripe peut livrer le même événement plusieurs fois
	exists, err := database.OrderExistsForPaymentIntent(pi.ID)
	if err != nil {
		log.Println("❌ Erreur vérification idempotence:", err)
		return
	}
	if exists {
		log.Printf("🔁 Commande déjà enregistrée pour %s, on ignore.", pi.ID)
		return
	}

	var cartItems []models.CartItem
	if err := json.Unmarshal([]byte(cartData), &cartItems); err != nil {
		log.Println("❌ Erreur JSON panier:", err)
		return
	}

	var address models.Address
	if raw := pi.Metadata["address"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &address); err != nil {
			log.Println("⚠️ Adresse metadata illisible:", err)
		}
	}

	order := buildOrderFromIntent(pi, customerID, cartItems, address)

	// Consommation atomique du coupon avant l'écriture de la commande :
	// si la limite est atteinte entre le checkout et le paiement, la
	// commande part sans réduction plutôt que de sur-consommer le coupon.
	couponConsumed := false
	if order.CouponID != nil {
		if err := database.ConsumeCoupon(*order.CouponID); err != nil {
			log.Printf("⚠️ Coupon %s non consommable au paiement: %v", order.CouponCode, err)
			order.CouponID = nil
			order.CouponCode = ""
			order.Discount = decimal.Zero
			// Le client a déjà payé le montant réduit, on garde le total tel quel
		} else {
			couponConsumed = true
			if err := database.RecordCouponUsage(*order.CouponID, customerID, order.ID); err != nil {
				log.Printf("⚠️ Erreur trace utilisation coupon: %v", err)
			}
		}
	}

	if err := database.InsertOrder(order); err != nil {
		log.Println("❌ Erreur insertion commande:", err)
		// Sans commande écrite, la consommation du coupon ne doit pas
		// brûler une utilisation : on rend le compteur.
		if couponConsumed {
			if relErr := database.ReleaseCoupon(*order.CouponID); relErr != nil {
				log.Printf("⚠️ Libération coupon %s impossible: %v", order.CouponCode, relErr)
			} else {
				log.Printf("💰 Consommation du coupon %s annulée (commande non écrite)", order.CouponCode)
			}
		}
		return
	}
	log.Printf("✅ Commande créée: %s (%s)", order.OrderNumber, order.ID)

	// Décrémenter le stock des produits commandés
	decrementStock(order.Items)

	// Supprimer le panier Redis APRÈS la commande
	ctx := context.Background()
	if err := database.Redis.Del(ctx, "cart:"+customerID).Err(); err == nil {
		log.Printf("🧹 Panier supprimé Redis pour %s", customerID)
	}

	// HTML + PDF + email en arrière-plan
	html := utils.GenerateOrderConfirmationHTML(order)

	pdf, err := utils.GenerateInvoicePDF(order)
	if err != nil {
		log.Println("❌ Erreur génération PDF :", err)
		pdf = nil
	}

	go func() {
		if err := utils.SendConfirmationEmail(customerEmail, "Confirmation de votre commande Velora", html, pdf); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", customerEmail)
		}
	}()
}

// buildOrderFromIntent reconstruit la commande depuis les metadata du
// PaymentIntent : les montants sont ceux figés au checkout, les lignes
// sont des instantanés produit.
func buildOrderFromIntent(pi stripe.PaymentIntent, customerID string, cartItems []models.CartItem, address models.Address) models.Order {
	now := time.Now()

	metaDec := func(key string) decimal.Decimal {
		d, err := decimal.NewFromString(pi.Metadata[key])
		if err != nil {
			return decimal.Zero
		}
		return d
	}

	order := models.Order{
		ID:              gocql.TimeUUID(),
		OrderNumber:     generateOrderNumber(now),
		CustomerID:      customerID,
		PaymentIntentID: pi.ID,
		Subtotal:        metaDec("subtotal"),
		ShippingCost:    metaDec("shipping_cost"),
		Tax:             metaDec("tax"),
		Discount:        metaDec("discount"),
		Total:           decimal.NewFromInt(pi.Amount).Div(decimal.NewFromInt(100)),
		CouponCode:      pi.Metadata["coupon_code"],
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPaid,
		PaymentMethod:   "stripe",

		ShippingFullName:   address.FullName,
		ShippingPhone:      address.Phone,
		ShippingLine1:      address.Line1,
		ShippingLine2:      address.Line2,
		ShippingCity:       address.City,
		ShippingState:      address.State,
		ShippingPostalCode: address.PostalCode,
		ShippingCountry:    address.Country,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if raw := pi.Metadata["coupon_id"]; raw != "" {
		if id, err := gocql.ParseUUID(raw); err == nil {
			order.CouponID = &id
		}
	}

	for _, item := range cartItems {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	return order
}

func decrementStock(items []models.OrderItem) {
	session, err := database.GetProductsSession()
	if err != nil {
		log.Println("⚠️ Stock non décrémenté:", err)
		return
	}

	for _, item := range items {
		productID, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			continue
		}

		var stock int
		if err := session.Query("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock); err != nil {
			continue
		}
		newStock := stock - item.Quantity
		if newStock < 0 {
			newStock = 0
		}
		if err := session.Query("UPDATE products SET stock = ? WHERE id = ?", newStock, productID).Exec(); err != nil {
			log.Printf("⚠️ Erreur décrément stock %s: %v", item.ProductID, err)
		}
	}
}
