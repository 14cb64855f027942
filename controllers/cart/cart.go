package cartcontroller

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/middleware"
	"github.com/velmart/ecommerce-api/models"
	"github.com/velmart/ecommerce-api/store"
)

type AddToCartInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// POST /cart
//
// Runs in one transaction: verify the product exists, then either
// accumulate quantity on the caller's existing line for that product or
// insert a new line. No stock check happens here; stock is enforced at
// order placement.
func AddToCart(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid request body",
				"data":    nil,
			})
			return
		}
		if input.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Product ID is required",
				"data":    nil,
			})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Quantity must be at least 1",
				"data":    nil,
			})
			return
		}

		var lineID string
		err := s.WithinTx(func(tx store.Store) error {
			if _, err := tx.GetProduct(input.ProductID); err != nil {
				return err
			}

			line, err := tx.GetCartLineByProduct(userID, input.ProductID)
			if err == nil {
				line.Quantity += input.Quantity
				lineID = line.ID
				return tx.SaveCartLine(line)
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			newLine := models.CartItem{
				UserID:    userID,
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
			}
			if err := tx.CreateCartLine(&newLine); err != nil {
				return err
			}
			lineID = newLine.ID
			return nil
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Product not found",
					"data":    nil,
				})
				return
			}
			internalError(c, "Failed to add product to cart", err)
			return
		}

		line, err := s.GetCartLine(userID, lineID)
		if err != nil {
			internalError(c, "Failed to add product to cart", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product added to cart",
			"data":    line,
		})
	}
}

// GET /cart
//
// The totalValue summary covers the returned page only, not the whole
// cart.
func ViewCart(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		page, limit := pageParams(c)

		items, total, err := s.ListCartLines(userID, page, limit)
		if err != nil {
			internalError(c, "Failed to retrieve cart", err)
			return
		}
		if items == nil {
			items = []models.CartItem{}
		}

		var totalValue float64
		for _, item := range items {
			totalValue += item.Product.Price * float64(item.Quantity)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cart retrieved successfully",
			"data": gin.H{
				"userId": userID,
				"items":  items,
				"meta": gin.H{
					"pagination": models.NewPagination(total, len(items), page, limit),
					"summary":    models.CartSummary{TotalValue: totalValue},
				},
			},
		})
	}
}

// PUT /cart/:cartItemId
func UpdateCartQuantity(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		lineID := c.Param("cartItemId")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cart item ID and quantity are required"})
			return
		}
		if input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be at least 1"})
			return
		}

		line, err := s.GetCartLine(userID, lineID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
				return
			}
			internalError(c, "Failed to update cart item", err)
			return
		}

		line.Quantity = input.Quantity
		if err := s.SaveCartLine(line); err != nil {
			internalError(c, "Failed to update cart item", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cart quantity updated successfully",
			"data":    line,
		})
	}
}

// DELETE /cart/:cartItemId
func RemoveFromCart(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		lineID := c.Param("cartItemId")

		if err := s.DeleteCartLine(userID, lineID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"message": "CartItem not found in cart",
					"data":    nil,
				})
				return
			}
			internalError(c, "Failed to remove cartItem from cart", err)
			return
		}

		remaining, err := s.CountCartLines(userID)
		if err != nil {
			internalError(c, "Failed to remove cartItem from cart", err)
			return
		}
		items, err := s.AllCartLines(userID)
		if err != nil {
			internalError(c, "Failed to remove cartItem from cart", err)
			return
		}
		if items == nil {
			items = []models.CartItem{}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "CartItem removed from cart",
			"data": gin.H{
				"removedCartItemId": lineID,
				"remainingItems":    remaining,
				"cartItems":         items,
			},
		})
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func internalError(c *gin.Context, msg string, err error) {
	resp := gin.H{"success": false, "message": msg, "data": nil}
	if os.Getenv("APP_ENV") == "development" && err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
