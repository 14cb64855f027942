package routes

import (
	"github.com/gin-gonic/gin"
	wishlistControllers "github.com/velmart/ecommerce-api/controllers/wishlist"
	"github.com/velmart/ecommerce-api/middleware"
	"github.com/velmart/ecommerce-api/store"
)

// SetupWishlistRoutes registers the bearer-protected wishlist endpoints.
func SetupWishlistRoutes(r *gin.Engine, s store.Store) {
	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.ValidateToken)
	{
		wishlist.POST("/:productId", wishlistControllers.AddToWishlist(s))
		wishlist.GET("", wishlistControllers.GetWishlist(s))
		wishlist.DELETE("/:productId", wishlistControllers.RemoveFromWishlist(s))
	}
}
