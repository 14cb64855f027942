package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/models"
	"github.com/velmart/ecommerce-api/store"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// sortColumns whitelists the sortable fields and maps the API names to
// column names.
var sortColumns = map[string]string{
	"price":     "price",
	"name":      "name",
	"stock":     "stock",
	"createdAt": "created_at",
}

// GetProducts lists the catalog with pagination, price range filtering,
// and sorting. Public.
func GetProducts(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)

		filter := store.ProductFilter{Page: page, Limit: limit}

		if minStr := c.Query("minPrice"); minStr != "" {
			mp, err := strconv.ParseFloat(minStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Invalid minPrice",
					"data":    nil,
				})
				return
			}
			filter.MinPrice = &mp
		}
		if maxStr := c.Query("maxPrice"); maxStr != "" {
			mp, err := strconv.ParseFloat(maxStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Invalid maxPrice",
					"data":    nil,
				})
				return
			}
			filter.MaxPrice = &mp
		}

		sortBy := c.Query("sortBy")
		if sortBy != "" {
			column, ok := sortColumns[sortBy]
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Invalid sortBy",
					"data":    nil,
				})
				return
			}
			filter.SortBy = column
			filter.SortOrder = strings.ToLower(c.DefaultQuery("sortOrder", "asc"))
			if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
				filter.SortOrder = "asc"
			}
		}

		products, total, err := s.ListProducts(filter)
		if err != nil {
			internalError(c, "Failed to retrieve products", err)
			return
		}
		if products == nil {
			products = []models.Product{}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Products retrieved successfully",
			"data":    products,
			"meta": gin.H{
				"pagination": models.NewPagination(total, len(products), page, limit),
				"filters": gin.H{
					"minPrice":  filter.MinPrice,
					"maxPrice":  filter.MaxPrice,
					"sortBy":    sortBy,
					"sortOrder": filter.SortOrder,
				},
			},
		})
	}
}

// pageParams reads page/limit with defaults of 1 and 10; limit is capped
// at 100 per the documented contract.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
