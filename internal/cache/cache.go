package cache

import (
	"context"
	"encoding/json"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const (
	CustomerCacheTTL = 5 * time.Minute
	CategoryCacheTTL = time.Hour
)

// GetCustomerFromCache récupère un client depuis Redis ou ScyllaDB
func GetCustomerFromCache(customerID string) (*models.Customer, error) {
	ctx := context.Background()
	key := "customer:" + customerID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var customer models.Customer
		if json.Unmarshal([]byte(data), &customer) == nil {
			return &customer, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetCustomersSession()
	if err != nil {
		return nil, err
	}

	var (
		externalID, email, name, imageURL, role, provider string
		createdAt                                         time.Time
	)
	err = session.Query(`SELECT external_id, email, name, image_url, role, provider, created_at
		FROM customers WHERE customer_id = ?`, customerID).Scan(
		&externalID, &email, &name, &imageURL, &role, &provider, &createdAt)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:         customerID,
		ExternalID: externalID,
		Email:      email,
		Name:       name,
		ImageURL:   imageURL,
		Role:       role,
		Provider:   provider,
		CreatedAt:  createdAt,
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(customer)
	database.Redis.Set(ctx, key, jsonData, CustomerCacheTTL)

	return customer, nil
}

// InvalidateCustomerCache invalide le cache d'un client
func InvalidateCustomerCache(customerID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "customer:"+customerID)
}

// InvalidateCategoryCache invalide la liste des catégories
func InvalidateCategoryCache() {
	ctx := context.Background()
	database.Redis.Del(ctx, "categories:all")
}
