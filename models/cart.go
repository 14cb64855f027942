package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one cart line: a user, a product, and a quantity. At most one
// line exists per (user, product) pair; adds against an existing pair
// accumulate quantity instead of inserting a second line. The pair is kept
// unique by lookup-before-insert, not by a DB constraint.
type CartItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	ProductID string    `gorm:"not null;index" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}

// CartSummary is computed over the lines of the returned page only.
type CartSummary struct {
	TotalValue float64 `json:"totalValue"`
}
