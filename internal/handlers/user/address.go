package user

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const addressColumns = "id, customer_id, full_name, phone, line1, line2, city, state, postal_code, country, is_default"

// ListMyAddresses - GET /api/addresses/mine
func ListMyAddresses(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		log.Printf("❌ Erreur session ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(
		"SELECT "+addressColumns+" FROM addresses WHERE customer_id = ? ALLOW FILTERING",
		customerID).Iter()

	var addresses []models.Address
	var address models.Address
	for iter.Scan(&address.ID, &address.CustomerID, &address.FullName, &address.Phone,
		&address.Line1, &address.Line2, &address.City, &address.State,
		&address.PostalCode, &address.Country, &address.IsDefault) {
		addresses = append(addresses, address)
		address = models.Address{}
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erreur lecture adresses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture adresses"})
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// CreateAddress - POST /api/addresses
func CreateAddress(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	address.ID = gocql.TimeUUID()
	address.CustomerID = customerID

	var existing int
	if err := session.Query("SELECT COUNT(*) FROM addresses WHERE customer_id = ? ALLOW FILTERING",
		customerID).Scan(&existing); err != nil {
		existing = 1 // comptage indisponible : ne pas forcer le défaut
	}
	address.IsDefault = shouldBeDefault(existing, address.IsDefault)

	if address.IsDefault {
		unsetDefaultAddresses(session, customerID)
	}

	err = session.Query(`INSERT INTO addresses (`+addressColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		address.ID, address.CustomerID, address.FullName, address.Phone,
		address.Line1, address.Line2, address.City, address.State,
		address.PostalCode, address.Country, address.IsDefault).Exec()
	if err != nil {
		log.Printf("❌ Erreur création adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création adresse"})
		return
	}

	log.Printf("✅ Adresse créée pour %s", customerID)
	c.JSON(http.StatusCreated, address)
}

// UpdateAddress - PUT /api/addresses/:id
func UpdateAddress(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerID string
	if err := session.Query("SELECT customer_id FROM addresses WHERE id = ?", addressID).
		Scan(&ownerID); err != nil || ownerID != customerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
		return
	}

	if address.IsDefault {
		unsetDefaultAddresses(session, customerID)
	}

	err = session.Query(`UPDATE addresses SET full_name = ?, phone = ?, line1 = ?, line2 = ?,
		city = ?, state = ?, postal_code = ?, country = ?, is_default = ? WHERE id = ?`,
		address.FullName, address.Phone, address.Line1, address.Line2,
		address.City, address.State, address.PostalCode, address.Country,
		address.IsDefault, addressID).Exec()
	if err != nil {
		log.Printf("❌ Erreur mise à jour adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour adresse"})
		return
	}

	address.ID = addressID
	address.CustomerID = customerID
	c.JSON(http.StatusOK, address)
}

// DeleteAddress - DELETE /api/addresses/:id
func DeleteAddress(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerID string
	if err := session.Query("SELECT customer_id FROM addresses WHERE id = ?", addressID).
		Scan(&ownerID); err != nil || ownerID != customerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
		return
	}

	if err := session.Query("DELETE FROM addresses WHERE id = ?", addressID).Exec(); err != nil {
		log.Printf("❌ Erreur suppression adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}

// MakeDefaultAddress - PATCH /api/addresses/:id/default
// Déroulé unset-puis-set : une brève fenêtre sans défaut est tolérée,
// jamais deux défauts durables.
func MakeDefaultAddress(c *gin.Context) {
	customerID := c.GetString("customer_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerID string
	if err := session.Query("SELECT customer_id FROM addresses WHERE id = ?", addressID).
		Scan(&ownerID); err != nil || ownerID != customerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
		return
	}

	unsetDefaultAddresses(session, customerID)

	if err := session.Query("UPDATE addresses SET is_default = ? WHERE id = ?",
		true, addressID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour adresse par défaut: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse par défaut mise à jour"})
}

// shouldBeDefault : la première adresse d'un client est toujours celle
// par défaut, ensuite c'est le choix du client.
func shouldBeDefault(existingCount int, requested bool) bool {
	return existingCount == 0 || requested
}

// unsetDefaultAddresses retire le drapeau défaut de toutes les adresses
// du client avant d'en marquer une nouvelle.
func unsetDefaultAddresses(session *gocql.Session, customerID string) {
	iter := session.Query(
		"SELECT id FROM addresses WHERE customer_id = ? AND is_default = ? ALLOW FILTERING",
		customerID, true).Iter()

	var id gocql.UUID
	for iter.Scan(&id) {
		if err := session.Query("UPDATE addresses SET is_default = ? WHERE id = ?",
			false, id).Exec(); err != nil {
			log.Printf("⚠️ Erreur unset défaut %s: %v", id, err)
		}
	}
	iter.Close()
}
