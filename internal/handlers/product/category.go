package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

const categoryColumns = "id, name, slug, description, image_url, parent_id, is_protected, allow_children, created_at, updated_at"

// CreateCategory - POST /api/admin/categories
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" || cat.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'slug' sont obligatoires"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Le parent doit exister et accepter des enfants
	if cat.ParentID != nil {
		var allowChildren bool
		err := session.Query("SELECT allow_children FROM categories WHERE id = ?", *cat.ParentID).
			Scan(&allowChildren)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie parente introuvable"})
			return
		}
		if !allowChildren {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cette catégorie n'accepte pas de sous-catégories"})
			return
		}
	}

	cat.ID = gocql.TimeUUID()
	now := time.Now()
	cat.CreatedAt = &now
	cat.UpdatedAt = &now
	// Une catégorie créée par l'API n'est jamais protégée
	cat.IsProtected = false

	err = session.Query(`INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Slug, cat.Description, cat.ImageURL,
		cat.ParentID, cat.IsProtected, cat.AllowChildren, cat.CreatedAt, cat.UpdatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur création catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	cache.InvalidateCategoryCache()
	utils.LogAction(c, utils.ACTION_CATEGORY_CREATE, "category", cat.ID.String(), nil, cat)
	c.JSON(http.StatusCreated, cat)
}

// GetAllCategories - GET /api/categories (cache Redis, 1h)
func GetAllCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories:all"

	val, err := database.Redis.Get(ctx, cacheKey).Result()
	if err == nil && val != "" {
		var cached []models.Category
		if json.Unmarshal([]byte(val), &cached) == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT " + categoryColumns + " FROM categories").Iter()

	var categories []models.Category
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL,
		&cat.ParentID, &cat.IsProtected, &cat.AllowChildren, &cat.CreatedAt, &cat.UpdatedAt) {
		categories = append(categories, cat)
		cat = models.Category{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	data, _ := json.Marshal(categories)
	database.Redis.Set(ctx, cacheKey, data, cache.CategoryCacheTTL)

	c.JSON(http.StatusOK, categories)
}

// UpdateCategory - PUT /api/admin/categories/:id
func UpdateCategory(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
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

	var isProtected bool
	if err := session.Query("SELECT is_protected FROM categories WHERE id = ?", id).
		Scan(&isProtected); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}
	if isProtected {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette catégorie système ne peut pas être modifiée"})
		return
	}

	err = session.Query(`UPDATE categories SET name = ?, slug = ?, description = ?, image_url = ?, updated_at = ?
		WHERE id = ?`,
		req.Name, req.Slug, req.Description, req.ImageURL, time.Now(), id).Exec()
	if err != nil {
		log.Printf("❌ Erreur mise à jour catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie"})
		return
	}

	cache.InvalidateCategoryCache()
	utils.LogAction(c, utils.ACTION_CATEGORY_UPDATE, "category", id.String(), nil, req)
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie mise à jour"})
}

// DeleteCategory - DELETE /api/admin/categories/:id
// Refusée si protégée, si elle a des sous-catégories ou des produits.
func DeleteCategory(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var isProtected bool
	if err := session.Query("SELECT is_protected FROM categories WHERE id = ?", id).
		Scan(&isProtected); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}
	if isProtected {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette catégorie système ne peut pas être supprimée"})
		return
	}

	var childCount int
	if err := session.Query("SELECT COUNT(*) FROM categories WHERE parent_id = ? ALLOW FILTERING", id).
		Scan(&childCount); err == nil && childCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Impossible de supprimer : la catégorie a des sous-catégories"})
		return
	}

	var productCount int
	if err := session.Query("SELECT COUNT(*) FROM products WHERE category_id = ? ALLOW FILTERING", id).
		Scan(&productCount); err == nil && productCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Impossible de supprimer : des produits utilisent cette catégorie"})
		return
	}

	if err := session.Query("DELETE FROM categories WHERE id = ?", id).Exec(); err != nil {
		log.Printf("❌ Erreur suppression catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}

	cache.InvalidateCategoryCache()
	utils.LogAction(c, utils.ACTION_CATEGORY_DELETE, "category", id.String(), nil, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
