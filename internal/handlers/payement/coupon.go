package pa

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/pricing"
	"velora_back_end/internal/utils"
)

// CreateCoupon - Créer un nouveau coupon (Admin seulement)
func CreateCoupon(c *gin.Context) {
	var req struct {
		Code                  string           `json:"code" binding:"required"`
		Description           string           `json:"description"`
		Type                  string           `json:"type" binding:"required"` // PERCENTAGE, FIXED_AMOUNT, FREE_SHIPPING
		Value                 decimal.Decimal  `json:"value"`
		MinPurchase           *decimal.Decimal `json:"min_purchase"`
		MaxDiscount           *decimal.Decimal `json:"max_discount"`
		UsageLimit            int              `json:"usage_limit"`
		UsageLimitPerCustomer int              `json:"usage_limit_per_customer"`
		StartDate             time.Time        `json:"start_date"`
		EndDate               time.Time        `json:"end_date" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if msg := validateCouponRequest(req.Type, req.Value, req.UsageLimit, req.UsageLimitPerCustomer); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// Vérifier si le code existe déjà
	if _, err := database.GetCouponByCode(req.Code); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ce code coupon existe déjà"})
		return
	}

	customerID := c.GetString("customer_id")
	now := time.Now()

	if req.StartDate.IsZero() {
		req.StartDate = now
	}
	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La date de fin doit être après la date de début"})
		return
	}

	coupon := models.Coupon{
		ID:                    gocql.TimeUUID(),
		Code:                  strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:           req.Description,
		Type:                  req.Type,
		Value:                 req.Value,
		MinPurchase:           req.MinPurchase,
		MaxDiscount:           req.MaxDiscount,
		UsageLimit:            req.UsageLimit,
		UsageLimitPerCustomer: req.UsageLimitPerCustomer,
		UsageCount:            0,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		IsActive:              true,
		CreatedBy:             customerID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := database.InsertCoupon(coupon); err != nil {
		log.Printf("❌ Erreur création coupon: %v", err)
		utils.LogFailedAction(c, utils.ACTION_COUPON_CREATE, "coupon", coupon.Code, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du coupon"})
		return
	}

	utils.LogAction(c, utils.ACTION_COUPON_CREATE, "coupon", coupon.ID.String(), nil, coupon)
	log.Printf("✅ Coupon créé: %s", coupon.Code)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon créé avec succès",
		"coupon":  coupon,
	})
}

// validateCouponRequest vérifie la cohérence d'une création de coupon.
// Retourne un message d'erreur, vide si la requête est valide.
func validateCouponRequest(couponType string, value decimal.Decimal, usageLimit, usageLimitPerCustomer int) string {
	switch couponType {
	case models.CouponTypePercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return "Pourcentage doit être entre 1 et 100"
		}
	case models.CouponTypeFixedAmount:
		if value.LessThanOrEqual(decimal.Zero) {
			return "Montant fixe doit être positif"
		}
	case models.CouponTypeFreeShipping:
		// pas de valeur requise
	default:
		return "Type de coupon invalide"
	}

	if usageLimit < 0 || usageLimitPerCustomer < 0 {
		return "Les limites d'utilisation ne peuvent pas être négatives"
	}
	return ""
}

// GetAllCoupons - Liste paginée des coupons (Admin), avec recherche,
// filtre is_active et tri.
func GetAllCoupons(c *gin.Context) {
	page, limit, err := parsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupons, err := database.ListCoupons()
	if err != nil {
		log.Printf("❌ Erreur récupération coupons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// Recherche sur code et description
	if search := strings.ToUpper(strings.TrimSpace(c.Query("search"))); search != "" {
		filtered := coupons[:0]
		for _, coupon := range coupons {
			if strings.Contains(coupon.Code, search) ||
				strings.Contains(strings.ToUpper(coupon.Description), search) {
				filtered = append(filtered, coupon)
			}
		}
		coupons = filtered
	}

	// Filtre actif/inactif
	if isActive := c.Query("is_active"); isActive != "" {
		want := isActive == "true"
		filtered := coupons[:0]
		for _, coupon := range coupons {
			if coupon.IsActive == want {
				filtered = append(filtered, coupon)
			}
		}
		coupons = filtered
	}

	sortCoupons(coupons, c.DefaultQuery("sort", "created_at"))

	total := len(coupons)
	c.JSON(http.StatusOK, gin.H{
		"coupons": paginate(coupons, page, limit),
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func sortCoupons(coupons []models.Coupon, field string) {
	switch field {
	case "code":
		sort.Slice(coupons, func(i, j int) bool { return coupons[i].Code < coupons[j].Code })
	case "end_date":
		sort.Slice(coupons, func(i, j int) bool { return coupons[i].EndDate.Before(coupons[j].EndDate) })
	case "usage_count":
		sort.Slice(coupons, func(i, j int) bool { return coupons[i].UsageCount > coupons[j].UsageCount })
	default: // created_at, plus récents en premier
		sort.Slice(coupons, func(i, j int) bool { return coupons[i].CreatedAt.After(coupons[j].CreatedAt) })
	}
}

// GetCoupon - Détail d'un coupon (Admin)
func GetCoupon(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID coupon invalide"})
		return
	}

	coupon, err := database.GetCouponByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// UpdateCoupon - Mettre à jour un coupon (champs partiels)
func UpdateCoupon(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID coupon invalide"})
		return
	}

	var req struct {
		Description           *string          `json:"description"`
		IsActive              *bool            `json:"is_active"`
		UsageLimit            *int             `json:"usage_limit"`
		UsageLimitPerCustomer *int             `json:"usage_limit_per_customer"`
		MinPurchase           *decimal.Decimal `json:"min_purchase"`
		MaxDiscount           *decimal.Decimal `json:"max_discount"`
		EndDate               *time.Time       `json:"end_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	old, err := database.GetCouponByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	updated := old
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	if req.UsageLimit != nil {
		updated.UsageLimit = *req.UsageLimit
	}
	if req.UsageLimitPerCustomer != nil {
		updated.UsageLimitPerCustomer = *req.UsageLimitPerCustomer
	}
	if req.MinPurchase != nil {
		updated.MinPurchase = req.MinPurchase
	}
	if req.MaxDiscount != nil {
		updated.MaxDiscount = req.MaxDiscount
	}
	if req.EndDate != nil {
		updated.EndDate = *req.EndDate
	}
	updated.UpdatedAt = time.Now()

	// Réécriture complète dans les deux tables (id + code)
	if err := database.InsertCoupon(updated); err != nil {
		log.Printf("❌ Erreur mise à jour coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	utils.LogAction(c, utils.ACTION_COUPON_UPDATE, "coupon", id.String(), old, updated)
	c.JSON(http.StatusOK, gin.H{"message": "Coupon mis à jour avec succès", "coupon": updated})
}

// ToggleCoupon - Activer/désactiver un coupon
func ToggleCoupon(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID coupon invalide"})
		return
	}

	coupon, err := database.GetCouponByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	coupon.IsActive = !coupon.IsActive
	coupon.UpdatedAt = time.Now()

	if err := database.InsertCoupon(coupon); err != nil {
		log.Printf("❌ Erreur toggle coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	utils.LogAction(c, utils.ACTION_COUPON_UPDATE, "coupon", id.String(),
		gin.H{"is_active": !coupon.IsActive}, gin.H{"is_active": coupon.IsActive})
	c.JSON(http.StatusOK, gin.H{"message": "Coupon mis à jour", "is_active": coupon.IsActive})
}

// DeleteCoupon - Supprimer un coupon, refusé s'il a déjà servi
func DeleteCoupon(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID coupon invalide"})
		return
	}

	coupon, err := database.GetCouponByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	used, err := database.CouponHasUsages(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if used {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Ce coupon a déjà été utilisé sur des commandes, désactivez-le plutôt",
		})
		return
	}

	if err := database.DeleteCoupon(id, coupon.Code); err != nil {
		log.Printf("❌ Erreur suppression coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	utils.LogAction(c, utils.ACTION_COUPON_DELETE, "coupon", id.String(), coupon, nil)
	log.Printf("✅ Coupon supprimé: %s", coupon.Code)
	c.JSON(http.StatusOK, gin.H{"message": "Coupon supprimé avec succès"})
}

// CheckCoupon - Vérification storefront d'un code pour le panier courant
// (verdict en lecture seule, aucune consommation).
func CheckCoupon(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code coupon requis"})
		return
	}

	subtotal, err := decimal.NewFromString(c.DefaultQuery("subtotal", "0"))
	if err != nil || subtotal.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant du panier invalide"})
		return
	}

	customerID := c.GetString("customer_id")
	validation := validateCouponForCustomer(code, subtotal, decimal.Zero, customerID)
	c.JSON(http.StatusOK, validation)
}

// validateCouponForCustomer assemble chargement, historique client et
// validation pure, puis calcule la réduction si le coupon est applicable.
func validateCouponForCustomer(code string, subtotal, shippingCost decimal.Decimal, customerID string) models.CouponValidation {
	coupon, err := database.GetCouponByCode(code)
	if err != nil {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Code coupon invalide",
		}
	}

	customerUsage := 0
	if coupon.UsageLimitPerCustomer > 0 && customerID != "" {
		if count, err := database.CountCustomerCouponUsage(coupon.ID, customerID); err == nil {
			customerUsage = count
		}
	}

	verdict := pricing.ValidateCoupon(coupon, subtotal, customerUsage, time.Now())
	if !verdict.Applicable {
		return models.CouponValidation{
			IsValid:      false,
			Reason:       verdict.Reason,
			ErrorMessage: reasonMessage(verdict.Reason),
		}
	}

	return models.CouponValidation{
		IsValid:  true,
		Discount: pricing.ComputeDiscount(coupon, subtotal, shippingCost),
		Type:     coupon.Type,
		Code:     coupon.Code,
	}
}
