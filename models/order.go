package models

import "time"

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"    // Order created from a cart, awaiting pickup
	OrderStatusFulfilled OrderStatus = "fulfilled" // Customer collected the order
)

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     *uint       `json:"user_id"`
	Total      float64     `gorm:"not null" json:"total"`
	PickupCode string      `gorm:"uniqueIndex;not null" json:"pickup_code"`
	Status     OrderStatus `gorm:"type:VARCHAR(20);default:'placed'" json:"status"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"` // unit price at checkout, not the live catalog price
}
