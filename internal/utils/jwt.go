package utils

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"velora_back_end/internal/models"
)

// GenerateJWT émet le token de session après le callback OAuth. Le rôle
// embarqué vient de la ligne customer (claim "admin" ou vide). Le jti
// permet la révocation avant expiration via la blacklist Redis.
func GenerateJWT(customer models.Customer) (string, error) {
	claims := jwt.MapClaims{
		"customer_id": customer.ID,
		"email":       customer.Email,
		"role":        customer.Role,
		"jti":         uuid.NewString(),
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

// JWTSecret retourne la clé de signature HMAC. Lue à chaque appel pour
// que le .env chargé dans main soit pris en compte : une valeur figée à
// l'init serait toujours vide.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateRefreshToken produit un token opaque ; seul Redis en garde la
// valeur de référence.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
