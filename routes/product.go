package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/velmart/ecommerce-api/controllers/product"
	"github.com/velmart/ecommerce-api/middleware"
	"github.com/velmart/ecommerce-api/store"
)

// SetupProductRoutes registers the catalog endpoints: public reads,
// admin-only writes and export.
func SetupProductRoutes(r *gin.Engine, s store.Store) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(s))
		products.GET("/:id", productControllers.GetProductByID(s))
	}

	admin := r.Group("/products")
	admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		admin.POST("", productControllers.CreateProduct(s))
		admin.PUT("/:id", productControllers.UpdateProduct(s))
		admin.DELETE("/:id", productControllers.DeleteProduct(s))
		admin.GET("/export/xlsx", productControllers.ExportProductsToExcel(s))
	}
}
