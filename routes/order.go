package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/velmart/ecommerce-api/controllers/order"
	"github.com/velmart/ecommerce-api/middleware"
	"github.com/velmart/ecommerce-api/store"
)

// SetupOrderRoutes registers the bearer-protected order endpoints.
func SetupOrderRoutes(r *gin.Engine, s store.Store) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("", orderControllers.PlaceOrder(s))
		orders.GET("", orderControllers.ViewOrders(s))
	}
}
