package routes

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/handlers/admin"
	pa "velora_back_end/internal/handlers/payement"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// ========== PUBLIC ==========
	api.GET("/auth/:provider", handlers.BeginAuth)
	api.GET("/auth/:provider/callback", handlers.CallbackAuth)
	api.POST("/auth/:provider/token", handlers.ExchangeAuthCode)
	api.POST("/auth/refresh", handlers.RefreshAccessToken)

	// Webhook Stripe : signature vérifiée dans le handler, jamais de JWT ici
	api.POST("/webhooks/stripe", pa.StripeWebhook)

	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/products/:id/images", product.GetProductImages)
	api.GET("/categories", product.GetAllCategories)
	api.GET("/shipping/options", pa.GetShippingOptions)

	// ========== CLIENT CONNECTÉ ==========
	authed := api.Group("")
	authed.Use(middleware.AuthRequired(), middleware.APIRateLimit())
	{
		authed.GET("/me", user.GetMyProfile)
		authed.PUT("/me", user.UpdateMyProfile)
		authed.POST("/auth/logout", handlers.Logout)

		authed.GET("/cart", user.GetCart)
		authed.POST("/cart", user.AddToCart)
		authed.PUT("/cart/:productId", user.UpdateCartItem)
		authed.DELETE("/cart/:productId", user.RemoveFromCart)
		authed.DELETE("/cart", user.ClearCart)
		authed.GET("/cart/ws", user.CartWebSocket)

		authed.GET("/coupons/check", pa.CheckCoupon)
		authed.POST("/checkout", middleware.CheckoutRateLimit(), pa.Checkout)

		authed.GET("/orders", user.GetMyOrders)
		authed.GET("/orders/history", user.GetMyOrderHistory)
		authed.GET("/orders/:id", user.GetOrderByID)
		authed.POST("/orders/:orderId/refund", pa.RequestRefund)
		authed.GET("/refunds", pa.GetMyRefunds)

		authed.GET("/addresses", user.ListMyAddresses)
		authed.POST("/addresses", user.CreateAddress)
		authed.PUT("/addresses/:id", user.UpdateAddress)
		authed.DELETE("/addresses/:id", user.DeleteAddress)
		authed.PATCH("/addresses/:id/default", user.MakeDefaultAddress)
	}

	// ========== ADMIN ==========
	adm := api.Group("/admin")
	adm.Use(middleware.AuthRequired(), middleware.RequireAdmin, middleware.AuditStatusChanges())
	{
		adm.POST("/coupons", pa.CreateCoupon)
		adm.GET("/coupons", pa.GetAllCoupons)
		adm.GET("/coupons/:id", pa.GetCoupon)
		adm.PUT("/coupons/:id", pa.UpdateCoupon)
		adm.PATCH("/coupons/:id/toggle", pa.ToggleCoupon)
		adm.DELETE("/coupons/:id", pa.DeleteCoupon)

		adm.GET("/orders", admin.GetAllOrders)
		adm.GET("/orders/:id", admin.GetOrder)
		adm.PUT("/orders/:id", admin.UpdateOrder)
		adm.POST("/orders/:id/cancel", admin.CancelOrder)

		adm.GET("/refunds", pa.GetAllRefunds)
		adm.POST("/refunds/:refundId/process", pa.ProcessRefund)

		adm.POST("/categories", product.CreateCategory)
		adm.PUT("/categories/:id", product.UpdateCategory)
		adm.DELETE("/categories/:id", product.DeleteCategory)

		adm.POST("/products", product.CreateProduct)
		adm.PUT("/products/:id", product.UpdateProduct)
		adm.DELETE("/products/:id", product.DeleteProduct)
		adm.POST("/products/:id/images", product.UploadProductImage)
		adm.DELETE("/products/:id/images", product.DeleteProductImage)

		adm.GET("/dashboard/stats", pa.GetDashboardStats)
		adm.GET("/dashboard/revenue", pa.GetMonthlyRevenue)
		adm.GET("/dashboard/customers", pa.GetMonthlyNewCustomers)
		adm.GET("/dashboard/recent-sales", pa.GetRecentSales)

		adm.GET("/customers", admin.GetAllCustomers)
		adm.GET("/customers/:id", admin.GetCustomer)
	}
}
