package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
)

// Order is created atomically with its items and never mutated afterwards.
type Order struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"not null;index" json:"userId"`
	Total     float64     `gorm:"not null" json:"total"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem freezes the product price at placement time; later catalog
// price changes do not touch it.
type OrderItem struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"not null;index" json:"orderId"`
	ProductID string  `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
