package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

type ctxKey string

// ProviderContextKey porte le provider OAuth dans le contexte de la
// requête, pour que gothic.GetProviderName le retrouve.
const ProviderContextKey ctxKey = "provider"

// BeginAuth - GET /api/auth/:provider — redirige vers le fournisseur
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderContextKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth - GET /api/auth/:provider/callback — upsert du client
// depuis l'identité externe puis émission du JWT.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderContextKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := upsertCustomer(gothUser)
	if err != nil {
		log.Printf("❌ Erreur upsert client: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création du compte"})
		return
	}

	token, refreshToken, err := issueTokens(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	// Redirection front avec le token, ou JSON si pas de front configuré
	if frontURL := os.Getenv("FRONTEND_URL"); frontURL != "" {
		c.Redirect(http.StatusTemporaryRedirect,
			frontURL+"/auth/callback?token="+token+"&refresh="+refreshToken)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"refresh_token": refreshToken,
		"customer":      customer,
	})
}

const refreshTokenTTL = 30 * 24 * time.Hour

// issueTokens émet la paire JWT + refresh token, ce dernier gardé dans
// Redis comme valeur de référence.
func issueTokens(customer models.Customer) (string, string, error) {
	token, err := utils.GenerateJWT(customer)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return "", "", err
	}

	if err := cache.StoreRefreshToken(customer.ID, refreshToken, refreshTokenTTL); err != nil {
		log.Printf("⚠️ Erreur stockage refresh token: %v", err)
	}
	return token, refreshToken, nil
}

// RefreshAccessToken - POST /api/auth/refresh — renouvelle le JWT contre
// le refresh token stocké.
func RefreshAccessToken(c *gin.Context) {
	var req struct {
		CustomerID   string `json:"customer_id" binding:"required"`
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token manquant"})
		return
	}

	stored, err := cache.GetRefreshToken(req.CustomerID)
	if err != nil || stored != req.RefreshToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide ou expiré"})
		return
	}

	customer, err := cache.GetCustomerFromCache(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Client introuvable"})
		return
	}

	token, err := utils.GenerateJWT(*customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int64((24 * time.Hour).Seconds()),
		"token_type": "Bearer",
	})
}

// upsertCustomer mappe une identité externe vers la ligne client
// interne (relation 1:1 via external_id), en la créant au besoin.
func upsertCustomer(gothUser goth.User) (models.Customer, error) {
	externalID := gothUser.Provider + ":" + gothUser.UserID

	// Client déjà connu ?
	var customerID string
	err := database.GetPreparedGetCustomerByExternalID().Bind(externalID).Scan(&customerID)
	if err == nil {
		if customer, err := cache.GetCustomerFromCache(customerID); err == nil {
			return *customer, nil
		}
		var customer models.Customer
		customer.ID = customerID
		err = database.GetPreparedGetCustomerByID().Bind(customerID).Scan(
			&customer.ExternalID, &customer.Email, &customer.Name,
			&customer.ImageURL, &customer.Role, &customer.Provider, &customer.CreatedAt)
		return customer, err
	}

	// Nouveau client
	customer := models.Customer{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		Email:      gothUser.Email,
		Name:       gothUser.Name,
		ImageURL:   gothUser.AvatarURL,
		Role:       "",
		Provider:   gothUser.Provider,
		CreatedAt:  time.Now(),
	}

	if err := database.GetPreparedInsertCustomer().Bind(
		customer.ID, customer.ExternalID, customer.Email, customer.Name,
		customer.ImageURL, customer.Role, customer.Provider, customer.CreatedAt,
	).Exec(); err != nil {
		return models.Customer{}, err
	}

	if err := database.GetPreparedInsertCustomerByExtID().Bind(
		customer.ExternalID, customer.ID,
	).Exec(); err != nil {
		return models.Customer{}, err
	}

	log.Printf("✅ Nouveau client créé: %s (%s)", customer.ID, customer.Provider)
	return customer, nil
}

// Logout - POST /api/auth/logout — révoque le refresh token et
// blackliste le JWT courant jusqu'à son expiration naturelle.
func Logout(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID != "" {
		if err := cache.DeleteRefreshToken(customerID); err != nil {
			log.Printf("⚠️ Erreur suppression refresh token: %v", err)
		}
	}

	if jti := c.GetString("token_jti"); jti != "" {
		ttl := 24 * time.Hour
		if exp := c.GetInt64("token_exp"); exp > 0 {
			if remaining := time.Until(time.Unix(exp, 0)); remaining > 0 {
				ttl = remaining
			}
		}
		if err := cache.BlacklistToken(jti, ttl); err != nil {
			log.Printf("⚠️ Erreur blacklist token: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}
