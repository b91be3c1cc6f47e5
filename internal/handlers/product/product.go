package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/utils"
)

const productColumns = `id, name, description, price, stock, low_stock_threshold, sku,
	category_id, image_urls, tags, is_active, has_variants, created_at, updated_at`

func scanProduct(scan func(dest ...interface{}) error) (models.Product, error) {
	var p models.Product
	var price string

	err := scan(&p.ID, &p.Name, &p.Description, &price, &p.Stock, &p.LowStockThreshold,
		&p.SKU, &p.CategoryID, &p.ImageURLs, &p.Tags, &p.IsActive, &p.HasVariants,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}

	p.Price, _ = decimal.NewFromString(price)
	return p, nil
}

// CreateProduct - POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var req struct {
		Name              string          `json:"name" binding:"required"`
		Description       string          `json:"description"`
		Price             decimal.Decimal `json:"price" binding:"required"`
		Stock             int             `json:"stock"`
		LowStockThreshold int             `json:"low_stock_threshold"`
		SKU               string          `json:"sku"`
		CategoryID        string          `json:"category_id" binding:"required"`
		ImageURLs         []string        `json:"image_urls"`
		Tags              []string        `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if req.Price.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	categoryID, err := gocql.ParseUUID(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var categoryName string
	if err := session.Query("SELECT name FROM categories WHERE id = ?", categoryID).
		Scan(&categoryName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:                gocql.TimeUUID(),
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		CategoryID:        categoryID,
		ImageURLs:         req.ImageURLs,
		Tags:              req.Tags,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = session.Query(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Price.StringFixed(2),
		product.Stock, product.LowStockThreshold, product.SKU, product.CategoryID,
		product.ImageURLs, product.Tags, product.IsActive, product.HasVariants,
		product.CreatedAt, product.UpdatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	go services.IndexProduct(product)
	utils.LogAction(c, utils.ACTION_PRODUCT_CREATE, "product", product.ID.String(), nil, product)

	log.Printf("✅ Produit créé: %s", product.Name)
	c.JSON(http.StatusCreated, product)
}

// GetAllProducts - GET /api/products (storefront: actifs seulement)
func GetAllProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT " + productColumns + " FROM products").Iter()

	includeInactive := c.GetString("role") == "admin" && c.Query("all") == "true"

	var products []models.Product
	for {
		product, err := scanProduct(func(dest ...interface{}) error {
			if !iter.Scan(dest...) {
				return gocql.ErrNotFound
			}
			return nil
		})
		if err != nil {
			break
		}
		if product.IsActive || includeInactive {
			products = append(products, product)
		}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct - GET /api/products/:id
func GetProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := session.Query("SELECT "+productColumns+" FROM products WHERE id = ?", id)
	product, err := scanProduct(query.Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Variantes éventuelles
	if product.HasVariants {
		variants, err := listVariants(session, id)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"product": product, "variants": variants})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func listVariants(session *gocql.Session, productID gocql.UUID) ([]models.ProductVariant, error) {
	iter := session.Query(
		"SELECT id, product_id, name, price, stock, sku FROM product_variants WHERE product_id = ? ALLOW FILTERING",
		productID).Iter()

	var variants []models.ProductVariant
	var variant models.ProductVariant
	var price string
	for iter.Scan(&variant.ID, &variant.ProductID, &variant.Name, &price, &variant.Stock, &variant.SKU) {
		variant.Price, _ = decimal.NewFromString(price)
		variants = append(variants, variant)
		variant = models.ProductVariant{}
	}
	return variants, iter.Close()
}

// UpdateProduct - PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		Name              *string          `json:"name"`
		Description       *string          `json:"description"`
		Price             *decimal.Decimal `json:"price"`
		Stock             *int             `json:"stock"`
		LowStockThreshold *int             `json:"low_stock_threshold"`
		Tags              []string         `json:"tags"`
		IsActive          *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := session.Query("SELECT "+productColumns+" FROM products WHERE id = ?", id)
	old, err := scanProduct(query.Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	updated := old
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
			return
		}
		updated.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
			return
		}
		updated.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		updated.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	updated.UpdatedAt = time.Now()

	err = session.Query(`UPDATE products SET name = ?, description = ?, price = ?, stock = ?,
		low_stock_threshold = ?, tags = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		updated.Name, updated.Description, updated.Price.StringFixed(2), updated.Stock,
		updated.LowStockThreshold, updated.Tags, updated.IsActive, updated.UpdatedAt, id).Exec()
	if err != nil {
		log.Printf("❌ Erreur mise à jour produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	// Réindexation ou retrait de l'index selon l'état
	if updated.IsActive {
		go services.IndexProduct(updated)
	} else {
		go services.RemoveProductFromIndex(id.String())
	}

	action := utils.ACTION_PRODUCT_UPDATE
	if req.Price != nil && !req.Price.Equal(old.Price) {
		action = utils.ACTION_PRODUCT_PRICE_CHANGE
	}
	utils.LogAction(c, action, "product", id.String(), old, updated)

	c.JSON(http.StatusOK, updated)
}

// DeleteProduct - DELETE /api/admin/products/:id
func DeleteProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := session.Query("SELECT "+productColumns+" FROM products WHERE id = ?", id)
	product, err := scanProduct(query.Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if err := session.Query("DELETE FROM products WHERE id = ?", id).Exec(); err != nil {
		log.Printf("❌ Erreur suppression produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	go services.RemoveProductFromIndex(id.String())
	utils.LogAction(c, utils.ACTION_PRODUCT_DELETE, "product", id.String(), product, nil)

	log.Printf("✅ Produit supprimé: %s", product.Name)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
