package models

import (
	"time"

	"github.com/google/uuid"
)

const OrderStatusConfirmed = "confirmed"

// Order is an immutable record of a placed order. Items and Total are
// snapshotted at placement time so later catalog changes never alter history.
type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Total           string    `gorm:"type:numeric(10,2);not null" json:"total"`
	Items           string    `gorm:"type:text;not null" json:"items"`
	ShippingName    string    `gorm:"not null" json:"shipping_name"`
	ShippingAddress string    `gorm:"not null" json:"shipping_address"`
	Status          string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OrderItemSnapshot is the per-line payload serialized into Order.Items.
type OrderItemSnapshot struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url"`
}
