package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/store"
)

// GetProductByID fetches one product. Public.
func GetProductByID(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		product, err := s.GetProduct(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"message": "Product not found",
					"data":    nil,
				})
				return
			}
			internalError(c, "Failed to retrieve product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product retrieved successfully",
			"data":    product,
		})
	}
}
