package wishlistcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/middleware"
	"github.com/velmart/ecommerce-api/models"
	"github.com/velmart/ecommerce-api/store"
)

// POST /wishlist/:productId
//
// The wishlist row is created lazily on the first add. Adding a product
// that is already a member is a conflict, reported as a 400.
func AddToWishlist(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		productID := c.Param("productId")

		product, err := s.GetProduct(productID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding to wishlist"})
			return
		}

		wishlist, err := s.GetWishlist(userID)
		if errors.Is(err, store.ErrNotFound) {
			wishlist = &models.Wishlist{UserID: userID}
			if err := s.CreateWishlist(wishlist); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding to wishlist"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding to wishlist"})
			return
		}

		member, err := s.WishlistHasProduct(wishlist.ID, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding to wishlist"})
			return
		}
		if member {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Product already in wishlist"})
			return
		}

		if err := s.AddWishlistProduct(wishlist, product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding to wishlist"})
			return
		}

		updated, err := s.GetWishlist(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding to wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product added to wishlist",
			"data":    updated,
		})
	}
}

// GET /wishlist
//
// Reports an empty product list when the caller has no wishlist row yet.
func GetWishlist(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		wishlist, err := s.GetWishlist(userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{"products": []models.Product{}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching wishlist"})
			return
		}
		if wishlist.Products == nil {
			wishlist.Products = []models.Product{}
		}

		c.JSON(http.StatusOK, wishlist)
	}
}

// DELETE /wishlist/:productId
func RemoveFromWishlist(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		productID := c.Param("productId")

		wishlist, err := s.GetWishlist(userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error removing from wishlist"})
			return
		}

		member, err := s.WishlistHasProduct(wishlist.ID, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error removing from wishlist"})
			return
		}
		if !member {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not in wishlist"})
			return
		}

		if err := s.RemoveWishlistProduct(wishlist, &models.Product{ID: productID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error removing from wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product removed from wishlist",
			"data":    gin.H{"productId": productID},
		})
	}
}
