package store

import (
	"errors"
	"fmt"

	"github.com/velmart/ecommerce-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on a *gorm.DB (Postgres in production).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (s *GormStore) WithinTx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// -------- users --------

func (s *GormStore) CreateUser(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// -------- products --------

func (s *GormStore) CreateProduct(p *models.Product) error {
	return translate(s.db.Create(p).Error)
}

func (s *GormStore) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *GormStore) GetProductForUpdate(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *GormStore) ListProducts(f ProductFilter) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	if f.SortBy != "" {
		query = query.Order(fmt.Sprintf("%s %s", f.SortBy, f.SortOrder))
	}

	var products []models.Product
	offset := (f.Page - 1) * f.Limit
	if err := query.Offset(offset).Limit(f.Limit).Find(&products).Error; err != nil {
		return nil, 0, translate(err)
	}
	return products, total, nil
}

func (s *GormStore) UpdateProduct(p *models.Product) error {
	return translate(s.db.Save(p).Error)
}

func (s *GormStore) DeleteProduct(id string) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) AllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

// -------- cart --------

func (s *GormStore) GetCartLineByProduct(userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *GormStore) GetCartLine(userID, lineID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Preload("Product").
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *GormStore) CreateCartLine(item *models.CartItem) error {
	return translate(s.db.Create(item).Error)
}

func (s *GormStore) SaveCartLine(item *models.CartItem) error {
	return translate(s.db.Save(item).Error)
}

func (s *GormStore) DeleteCartLine(userID, lineID string) error {
	result := s.db.Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListCartLines(userID string, page, limit int) ([]models.CartItem, int64, error) {
	var total int64
	if err := s.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var items []models.CartItem
	offset := (page - 1) * limit
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, translate(err)
	}
	return items, total, nil
}

func (s *GormStore) CountCartLines(userID string) (int64, error) {
	var total int64
	err := s.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).Count(&total).Error
	return total, translate(err)
}

func (s *GormStore) AllCartLines(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *GormStore) ClearCart(userID string) error {
	return translate(s.db.Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error)
}

// -------- orders --------

func (s *GormStore) CreateOrder(o *models.Order) error {
	// Items are created through the association in the same insert.
	return translate(s.db.Create(o).Error)
}

func (s *GormStore) ListOrders(userID string, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := s.db.Model(&models.Order{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var orders []models.Order
	offset := (page - 1) * limit
	if err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, translate(err)
	}
	return orders, total, nil
}

// -------- wishlist --------

func (s *GormStore) GetWishlist(userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := s.db.Preload("Products").
		Where("user_id = ?", userID).
		First(&wishlist).Error; err != nil {
		return nil, translate(err)
	}
	return &wishlist, nil
}

func (s *GormStore) CreateWishlist(w *models.Wishlist) error {
	return translate(s.db.Create(w).Error)
}

func (s *GormStore) WishlistHasProduct(wishlistID, productID string) (bool, error) {
	var count int64
	err := s.db.Table("wishlist_products").
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *GormStore) AddWishlistProduct(w *models.Wishlist, p *models.Product) error {
	return translate(s.db.Model(w).Association("Products").Append(p))
}

func (s *GormStore) RemoveWishlistProduct(w *models.Wishlist, p *models.Product) error {
	return translate(s.db.Model(w).Association("Products").Delete(p))
}
