package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"stitchlk-backend/controllers"
	"stitchlk-backend/middlewares"
	"stitchlk-backend/models"
)

// Setup configures and returns the Gin engine.
func Setup(ctrl *controllers.Controller, env string, log zerolog.Logger) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.PrometheusMiddleware())

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	staff := middlewares.RequireAuth(ctrl.PasetoSecretKey, models.RoleAdmin, models.RoleManager)
	admin := middlewares.RequireAuth(ctrl.PasetoSecretKey, models.RoleAdmin)

	api := r.Group("/api")
	{
		// Utility routes
		api.GET("/health", ctrl.HealthCheck)
		api.GET("/stats", staff, ctrl.GetStats)

		// Authentication routes
		api.POST("/login", ctrl.Login)
		api.POST("/register", ctrl.Register)

		// Product routes
		api.GET("/products", ctrl.GetProducts)
		api.GET("/products/low-stock", staff, ctrl.GetLowStockProducts)
		api.GET("/products/:id", ctrl.GetProduct)
		api.POST("/products", staff, ctrl.CreateProduct)
		api.PUT("/products/:id", staff, ctrl.UpdateProduct)
		api.DELETE("/products/:id", staff, ctrl.DeleteProduct)
		api.POST("/products/:id/restock", staff, ctrl.RestockProduct)

		// Category routes
		api.GET("/categories", ctrl.GetCategories)
		api.GET("/categories/:slug", ctrl.GetCategory)
		api.POST("/categories", staff, ctrl.CreateCategory)
		api.PUT("/categories/:id", staff, ctrl.UpdateCategory)
		api.DELETE("/categories/:id", staff, ctrl.DeleteCategory)

		// Cart routes
		api.GET("/cart/:userId", ctrl.GetCart)
		api.PUT("/cart/:userId", ctrl.SaveCart)
		api.POST("/cart/:userId/items", ctrl.AddToCart)
		api.DELETE("/cart/:userId/items", ctrl.RemoveFromCart)
		api.DELETE("/cart/:userId", ctrl.ClearCart)
		api.POST("/cart/:userId/checkout", ctrl.Checkout)

		// Order routes
		api.POST("/delivery/quote", ctrl.QuoteDelivery)
		api.GET("/orders", staff, ctrl.GetOrders)
		api.GET("/orders/user/:userId", ctrl.GetUserOrders)
		api.GET("/orders/:id", ctrl.GetOrder)
		api.PUT("/orders/:id/status", staff, ctrl.UpdateOrderStatus)
		api.PUT("/orders/:id/payment", staff, ctrl.UpdatePaymentStatus)
		api.DELETE("/orders/:id", admin, ctrl.DeleteOrder)

		// User routes
		api.GET("/users", admin, ctrl.GetUsers)
		api.POST("/users", admin, ctrl.CreateUser)
		api.PUT("/users/:id/role", admin, ctrl.UpdateUserRole)
		api.DELETE("/users/:id", admin, ctrl.DeleteUser)

		// Address routes
		api.GET("/addresses/:userId", ctrl.GetAddresses)
		api.POST("/addresses", ctrl.CreateAddress)
		api.PUT("/addresses/:id", ctrl.UpdateAddress)
		api.DELETE("/addresses/:id", ctrl.DeleteAddress)

		// Promo code routes
		api.GET("/promo-codes", staff, ctrl.GetPromoCodes)
		api.POST("/promo-codes", staff, ctrl.CreatePromoCode)
		api.POST("/promo-codes/validate", ctrl.ValidatePromoCode)
		api.DELETE("/promo-codes/:id", staff, ctrl.DeletePromoCode)

		// Tailoring routes
		api.POST("/tailoring", ctrl.CreateTailoringOrder)
		api.GET("/tailoring", staff, ctrl.GetTailoringOrders)
		api.GET("/tailoring/:id", ctrl.GetTailoringOrder)
		api.PUT("/tailoring/:id/status", staff, ctrl.UpdateTailoringStatus)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
