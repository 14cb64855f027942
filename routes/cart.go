package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/velmart/ecommerce-api/controllers/cart"
	"github.com/velmart/ecommerce-api/middleware"
	"github.com/velmart/ecommerce-api/store"
)

// SetupCartRoutes registers the bearer-protected cart endpoints.
func SetupCartRoutes(r *gin.Engine, s store.Store) {
	cart := r.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.POST("", cartControllers.AddToCart(s))
		cart.GET("", cartControllers.ViewCart(s))
		cart.PUT("/:cartItemId", cartControllers.UpdateCartQuantity(s))
		cart.DELETE("/:cartItemId", cartControllers.RemoveFromCart(s))
	}
}
