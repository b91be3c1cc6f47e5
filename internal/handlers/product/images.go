package product

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/services"
)

// =========================
// 🟢 UPLOAD IMAGE PRODUIT
// =========================
// POST /api/admin/products/:id/images — multipart "file"
func UploadProductImage(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existingURLs []string
	err = session.Query("SELECT image_urls FROM products WHERE id = ?", id).Scan(&existingURLs)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	imageURL, err := services.UploadFile(os.Getenv("MINIO_BUCKET"), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload MinIO: " + err.Error()})
		return
	}

	existingURLs = append(existingURLs, imageURL)
	err = session.Query("UPDATE products SET image_urls = ?, updated_at = ? WHERE id = ?",
		existingURLs, time.Now(), id).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "✅ Image uploadée avec succès",
		"product_id": id.String(),
		"image_url":  imageURL,
	})
}

// =========================
// 🔵 LISTER LES IMAGES (URLs signées)
// =========================
// GET /api/products/:id/images
func GetProductImages(c *gin.Context) {
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

	var imageURLs []string
	if err := session.Query("SELECT image_urls FROM products WHERE id = ?", id).Scan(&imageURLs); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// URLs signées valables 24h
	ctx := context.Background()
	signedURLs := []string{}
	for _, url := range imageURLs {
		if url == "" {
			continue
		}
		signed, err := services.GenerateSignedURL(ctx, url, 24*time.Hour)
		if err == nil {
			signedURLs = append(signedURLs, signed)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": id.String(),
		"images":     signedURLs,
	})
}

// =========================
// 🔴 SUPPRIMER UNE IMAGE
// =========================
// DELETE /api/admin/products/:id/images
func DeleteProductImage(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		ImageURL string `json:"image_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var currentURLs []string
	if err := session.Query("SELECT image_urls FROM products WHERE id = ?", id).Scan(&currentURLs); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	filteredURLs := []string{}
	found := false
	for _, url := range currentURLs {
		if url == req.ImageURL {
			found = true
			continue
		}
		filteredURLs = append(filteredURLs, url)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image introuvable sur ce produit"})
		return
	}

	// Supprimer l'objet MinIO (le nom suit le préfixe bucket dans l'URL publique)
	bucket := os.Getenv("MINIO_BUCKET")
	objectName := objectNameFromURL(req.ImageURL, bucket)
	if err := services.DeleteFile(bucket, objectName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression MinIO: " + err.Error()})
		return
	}

	err = session.Query("UPDATE products SET image_urls = ?, updated_at = ? WHERE id = ?",
		filteredURLs, time.Now(), id).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "🗑️ Image supprimée avec succès",
		"product_id": id.String(),
		"image_url":  req.ImageURL,
	})
}

// Retrouve le nom d'objet MinIO à partir de l'URL publique stockée en base.
func objectNameFromURL(imageURL, bucket string) string {
	prefix := fmt.Sprintf("http://%s/%s/", os.Getenv("MINIO_ENDPOINT"), bucket)
	return strings.TrimPrefix(imageURL, prefix)
}
