package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/store"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, s store.Store) {
	SetupAuthRoutes(r, s)
	SetupProductRoutes(r, s)
	SetupCartRoutes(r, s)
	SetupOrderRoutes(r, s)
	SetupWishlistRoutes(r, s)
}
