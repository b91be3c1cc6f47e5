package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
)

const (
	// Limites par endpoint
	CheckoutMaxAttempts = 10  // Par 10 minutes, par client
	APIMaxRequests      = 100 // Par minute pour les endpoints généraux

	// Durées de cooldown
	CheckoutCooldown = 10 * time.Minute
	APICooldown      = 1 * time.Minute
)

// CheckoutRateLimit limite les tentatives de checkout par client pour
// éviter le martèlement des PaymentIntents Stripe
func CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.GetString("customer_id")
		if customerID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "checkout_attempts:" + customerID

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= CheckoutMaxAttempts {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives de paiement. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		database.Redis.Incr(ctx, key)
		database.Redis.Expire(ctx, key, CheckoutCooldown)

		c.Next()
	}
}

// APIRateLimit limite générale par IP
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "api_requests:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Limite de requêtes atteinte, réessayez dans une minute",
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, APICooldown)
		pipe.Exec(ctx)

		c.Next()
	}
}
