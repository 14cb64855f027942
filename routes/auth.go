package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/velmart/ecommerce-api/controllers/auth"
	"github.com/velmart/ecommerce-api/store"
)

// SetupAuthRoutes registers the public registration and login endpoints.
func SetupAuthRoutes(r *gin.Engine, s store.Store) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authControllers.Register(s))
		authGroup.POST("/login", authControllers.Login(s))
	}
}
