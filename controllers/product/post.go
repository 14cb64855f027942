package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/models"
	"github.com/velmart/ecommerce-api/store"
)

// CreateProduct adds a catalog entry. Admin only.
func CreateProduct(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		product := models.Product{
			Name:        parsed.Name,
			Description: parsed.Description,
			Price:       parsed.Price,
			Stock:       parsed.Stock,
			ImageURL:    parsed.ImageURL,
		}
		if err := s.CreateProduct(&product); err != nil {
			internalError(c, "Failed to create product", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product created successfully",
			"data":    product,
		})
	}
}
