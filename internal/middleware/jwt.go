package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/utils"
)

// AuthRequired vérifie le JWT émis après le callback OAuth et pose
// customer_id / email / role dans le contexte Gin. Le rôle vient du
// fournisseur d'identité, on lui fait confiance tel quel.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
			}
			return utils.JWTSecret(), nil
		})

		if err != nil {
			log.Printf("❌ Erreur parsing JWT: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			// Vérifier l'expiration
			if exp, ok := claims["exp"].(float64); ok {
				if time.Now().Unix() > int64(exp) {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expiré"})
					c.Abort()
					return
				}
			}

			customerID, ok := claims["customer_id"].(string)
			if !ok {
				log.Printf("❌ customer_id manquant ou invalide dans claims: %+v", claims)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "customer_id manquant"})
				c.Abort()
				return
			}

			// Token révoqué avant expiration ?
			if jti, ok := claims["jti"].(string); ok {
				if cache.IsTokenBlacklisted(jti) {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Token révoqué"})
					c.Abort()
					return
				}
				c.Set("token_jti", jti)
				if exp, ok := claims["exp"].(float64); ok {
					c.Set("token_exp", int64(exp))
				}
			}

			c.Set("customer_id", customerID)
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])

			c.Next()
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}
	}
}
