package routes

import (
	adminapi "arfcoder-backend/internal/api/admin"
	authapi "arfcoder-backend/internal/api/auth"
	cartapi "arfcoder-backend/internal/api/cart"
	"arfcoder-backend/internal/api/checkout"
	licensesapi "arfcoder-backend/internal/api/licenses"
	notificationsapi "arfcoder-backend/internal/api/notifications"
	ordersapi "arfcoder-backend/internal/api/orders"
	productsapi "arfcoder-backend/internal/api/products"
	redeemapi "arfcoder-backend/internal/api/redeem"
	storiesapi "arfcoder-backend/internal/api/stories"
	"arfcoder-backend/internal/api/supplier"
	tripaywebhooks "arfcoder-backend/internal/api/tripaywebhook"
	"arfcoder-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// The webhook receives raw signed bodies; it must never go through the
	// sanitizer, which would rewrite the bytes the signature covers.
	r.POST("/tripay-webhook", tripaywebhooks.TripayWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/products", productsapi.ListProducts)
	r.GET("/stories", storiesapi.ListStories)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/send-otp", authapi.SendOTP)
	public.POST("/verify-otp", authapi.VerifyOTP)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())

	auth.GET("/cart", cartapi.GetCart)
	auth.POST("/cart", cartapi.AddToCart)
	auth.DELETE("/cart", cartapi.ClearCart)
	auth.DELETE("/cart/:id", cartapi.RemoveFromCart)

	auth.POST("/tripay-create-payment", checkout.CreateTripayPayment)
	auth.POST("/create-checkout", checkout.CreateStripeCheckout)
	auth.POST("/verify-payment", checkout.VerifyStripePayment)

	auth.GET("/orders", ordersapi.GetMyOrders)
	auth.GET("/orders/:merchant_ref", ordersapi.GetOrderStatus)

	auth.GET("/licenses", licensesapi.GetLicenses)

	auth.GET("/notifications", notificationsapi.ListNotifications)
	auth.POST("/notifications/:id/read", notificationsapi.MarkNotificationRead)

	auth.POST("/redeem", redeemapi.RedeemCode)
	auth.POST("/stories", storiesapi.CreateStory)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/orders", adminapi.ListAllOrders)
	admin.POST("/products", productsapi.CreateProduct)
	admin.PUT("/products/:id", productsapi.UpdateProduct)
	admin.POST("/licenses", licensesapi.CreateLicense)
	admin.POST("/redeem-codes", redeemapi.CreateRedeemCode)
	admin.POST("/supplier/process", supplier.ProcessSupplierOrder)
	admin.POST("/stories/:id/moderate", storiesapi.ModerateStory)
}
