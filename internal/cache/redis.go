package cache

import (
	"context"
	"fmt"
	"time"

	"velora_back_end/internal/database"
)

var ctx = context.Background()

// --- Refresh Tokens ---

// StoreRefreshToken stocke un refresh token pour un client
func StoreRefreshToken(customerID, refreshToken string, duration time.Duration) error {
	key := fmt.Sprintf("refresh:%s", customerID)
	return database.Redis.Set(ctx, key, refreshToken, duration).Err()
}

// GetRefreshToken récupère le refresh token d'un client
func GetRefreshToken(customerID string) (string, error) {
	key := fmt.Sprintf("refresh:%s", customerID)
	return database.Redis.Get(ctx, key).Result()
}

// DeleteRefreshToken supprime le refresh token (logout)
func DeleteRefreshToken(customerID string) error {
	key := fmt.Sprintf("refresh:%s", customerID)
	return database.Redis.Del(ctx, key).Err()
}

// --- Blacklist JWT (révocation avant expiration) ---

// BlacklistToken ajoute un token JWT à la blacklist
func BlacklistToken(tokenID string, duration time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", tokenID)
	return database.Redis.Set(ctx, key, "revoked", duration).Err()
}

// IsTokenBlacklisted vérifie si un token est blacklisté
func IsTokenBlacklisted(tokenID string) bool {
	key := fmt.Sprintf("blacklist:%s", tokenID)
	return database.Redis.Exists(ctx, key).Val() > 0
}
