package models

import "time"

// StatusPending is the status every order starts with. Status is free-form
// beyond that: admins write whatever vocabulary the storefront uses
// ("en attente", "shipped", ...), nothing validates it.
const StatusPending = "pending"

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"index;not null" json:"user_id"`
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Total           float64     `gorm:"not null;default:0" json:"total"`
	Status          string      `gorm:"not null;default:'pending'" json:"status"`
	ShippingAddress string      `gorm:"type:TEXT" json:"shipping_address"`
	CustomerInfo    string      `gorm:"type:TEXT" json:"-"` // serialized contact snapshot, parsed at read time
	PaymentMethod   string      `gorm:"type:VARCHAR(50)" json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`
}
