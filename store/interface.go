package store

import (
	"errors"

	"github.com/velmart/ecommerce-api/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// ProductFilter carries the catalog listing parameters. Nil price bounds
// mean unbounded; SortBy/SortOrder are applied verbatim after validation
// in the handler.
type ProductFilter struct {
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Store is the persistence boundary. The GORM implementation backs the
// running service; the in-memory implementation backs handler tests.
// WithinTx runs fn against a store whose operations share one transaction.
type Store interface {
	WithinTx(fn func(Store) error) error

	// users
	CreateUser(u *models.User) error
	GetUserByEmail(email string) (*models.User, error)

	// products
	CreateProduct(p *models.Product) error
	GetProduct(id string) (*models.Product, error)
	// GetProductForUpdate locks the product row for the duration of the
	// surrounding transaction. Outside a transaction it is a plain read.
	GetProductForUpdate(id string) (*models.Product, error)
	ListProducts(f ProductFilter) ([]models.Product, int64, error)
	UpdateProduct(p *models.Product) error
	DeleteProduct(id string) error
	AllProducts() ([]models.Product, error)

	// cart
	GetCartLineByProduct(userID, productID string) (*models.CartItem, error)
	GetCartLine(userID, lineID string) (*models.CartItem, error)
	CreateCartLine(item *models.CartItem) error
	SaveCartLine(item *models.CartItem) error
	DeleteCartLine(userID, lineID string) error
	ListCartLines(userID string, page, limit int) ([]models.CartItem, int64, error)
	CountCartLines(userID string) (int64, error)
	AllCartLines(userID string) ([]models.CartItem, error)
	ClearCart(userID string) error

	// orders
	CreateOrder(o *models.Order) error
	ListOrders(userID string, page, limit int) ([]models.Order, int64, error)

	// wishlist
	GetWishlist(userID string) (*models.Wishlist, error)
	CreateWishlist(w *models.Wishlist) error
	WishlistHasProduct(wishlistID, productID string) (bool, error)
	AddWishlistProduct(w *models.Wishlist, p *models.Product) error
	RemoveWishlistProduct(w *models.Wishlist, p *models.Product) error
}
