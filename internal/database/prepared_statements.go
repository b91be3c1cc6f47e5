package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes fréquentes
	stmtGetCustomerByExternalID *gocql.Query
	stmtGetCustomerByID         *gocql.Query
	stmtInsertCustomer          *gocql.Query
	stmtInsertCustomerByExtID   *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		customersSession, err := GetCustomersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements (customers): %v", err)
			return
		}

		// customer_id par identité externe (fournisseur OAuth)
		stmtGetCustomerByExternalID = customersSession.Query(
			"SELECT customer_id FROM customers_by_external_id WHERE external_id = ?")

		stmtGetCustomerByID = customersSession.Query(`SELECT external_id, email, name, image_url, role, provider, created_at
			FROM customers WHERE customer_id = ?`)

		stmtInsertCustomer = customersSession.Query(`INSERT INTO customers (customer_id, external_id, email, name, image_url, role, provider, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

		stmtInsertCustomerByExtID = customersSession.Query(
			"INSERT INTO customers_by_external_id (external_id, customer_id) VALUES (?, ?)")

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetCustomerByExternalID() *gocql.Query {
	return stmtGetCustomerByExternalID
}

func GetPreparedGetCustomerByID() *gocql.Query {
	return stmtGetCustomerByID
}

func GetPreparedInsertCustomer() *gocql.Query {
	return stmtInsertCustomer
}

func GetPreparedInsertCustomerByExtID() *gocql.Query {
	return stmtInsertCustomerByExtID
}

