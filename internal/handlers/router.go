package handlers

import (
	"restaurant_pos/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter mounts every route on a fresh engine.
func NewRouter(h *APIHandler, logger *zap.Logger, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger), CORS(allowOrigins))

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/settings", h.GetSettings)
		api.GET("/menu", h.OptionalAuth(), h.GetMenu)
		api.GET("/menu/items/:id", h.GetMenuItem)

		cart := api.Group("/cart")
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.POST("/items", h.AddCartItem)
		cart.PUT("/items/:id", h.UpdateCartItem)
		cart.DELETE("/items/:id", h.RemoveCartItem)
		cart.GET("/quote", h.QuoteCart)
		cart.POST("/verify", h.VerifyCart)

		api.POST("/orders", h.OptionalAuth(), h.CreateOrder)
		api.GET("/orders/:ref", h.OptionalAuth(), h.GetOrder)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.RequireAuth(), h.Me)
		auth.PUT("/password", h.RequireAuth(), h.ChangePassword)
	}

	admin := api.Group("/admin", h.RequireAuth(), RequireRole(models.SuperAdmin, models.Admin))
	{
		admin.GET("/orders", h.ListOrders)
		admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		admin.PATCH("/orders/:id/payment-status", h.UpdatePaymentStatus)
		admin.GET("/orders/:id/history", h.GetOrderHistory)

		admin.PUT("/settings", h.UpdateSettings)

		admin.GET("/categories", h.ListCategories)
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)

		admin.POST("/menu/items", h.CreateMenuItem)
		admin.PUT("/menu/items/:id", h.UpdateMenuItem)
		admin.PATCH("/menu/items/:id/availability", h.SetMenuItemAvailability)
		admin.DELETE("/menu/items/:id", h.DeleteMenuItem)
	}

	return router
}
