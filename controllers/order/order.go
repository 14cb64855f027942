package ordercontroller

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/middleware"
	"github.com/velmart/ecommerce-api/models"
	"github.com/velmart/ecommerce-api/store"
)

var (
	errInsufficientStock = errors.New("insufficient stock")
	errEmptyCart         = errors.New("cart is empty")
)

// POST /orders
//
// Converts the caller's cart into an order in one transaction: the cart
// is read, every product row is locked, stock is checked and decremented,
// the order is created with snapshot prices, and the cart is cleared.
// Either all of it happens or none of it does. Reading the lines inside
// the transaction keeps the clear from wiping a line that was never
// ordered.
func PlaceOrder(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var order models.Order
		err := s.WithinTx(func(tx store.Store) error {
			cart, err := tx.AllCartLines(userID)
			if err != nil {
				return err
			}
			if len(cart) == 0 {
				return errEmptyCart
			}

			var total float64
			var items []models.OrderItem

			for _, line := range cart {
				product, err := tx.GetProductForUpdate(line.ProductID)
				if err != nil {
					return err
				}
				if product.Stock < line.Quantity {
					return fmt.Errorf("%w for product: %s", errInsufficientStock, product.Name)
				}

				product.Stock -= line.Quantity
				if err := tx.UpdateProduct(product); err != nil {
					return err
				}

				total += product.Price * float64(line.Quantity)
				items = append(items, models.OrderItem{
					ProductID: product.ID,
					Quantity:  line.Quantity,
					Price:     product.Price,
				})
			}

			order = models.Order{
				UserID: userID,
				Total:  total,
				Status: models.OrderStatusPending,
				Items:  items,
			}
			if err := tx.CreateOrder(&order); err != nil {
				return err
			}
			return tx.ClearCart(userID)
		})
		if err != nil {
			switch {
			case errors.Is(err, errEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
			case errors.Is(err, errInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product no longer available"})
			default:
				internalError(c, "Failed to place order", err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Order placed",
			"orderId": order.ID,
		})
	}
}

// GET /orders
//
// Paginated, newest first, with items and their product snapshots.
func ViewOrders(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		page, limit := pageParams(c)

		orders, total, err := s.ListOrders(userID, page, limit)
		if err != nil {
			internalError(c, "Failed to retrieve orders", err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Orders retrieved successfully",
			"data": gin.H{
				"orders": orders,
				"meta": gin.H{
					"pagination": models.NewPagination(total, len(orders), page, limit),
				},
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
