package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/store"
)

// UpdateProduct replaces a product's fields. Same required fields as
// create. Admin only.
func UpdateProduct(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid request body",
				"data":    nil,
			})
			return
		}

		parsed, errMsg := input.parse()
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": errMsg,
				"data":    nil,
			})
			return
		}

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
			internalError(c, "Failed to update product", err)
			return
		}

		product.Name = parsed.Name
		product.Description = parsed.Description
		product.Price = parsed.Price
		product.Stock = parsed.Stock
		product.ImageURL = parsed.ImageURL

		if err := s.UpdateProduct(product); err != nil {
			internalError(c, "Failed to update product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product updated successfully",
			"data":    product,
		})
	}
}
