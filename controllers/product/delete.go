package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/store"
)

// DeleteProduct hard-deletes a product. Admin only. Existing cart lines
// and order items keep their own snapshots and are not touched.
func DeleteProduct(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := s.DeleteProduct(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"message": "Product not found",
					"data":    nil,
				})
				return
			}
			internalError(c, "Failed to delete product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product deleted successfully",
			"data":    gin.H{"id": id},
		})
	}
}
