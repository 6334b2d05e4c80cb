package models

import "time"

type OrderItem struct {
	ProductID string `json:"product_id"`
	BrandID   string `json:"brand_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type Order struct {
	ID              int64       `json:"id"`
	OrderID         string      `json:"order_id"`
	UserID          int64       `json:"user_id"`
	TotalPrice      float64     `json:"total_price"`
	OrderDate       time.Time   `json:"order_date"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentStatus   string      `json:"payment_status"`
	ShippingAddress Address     `json:"shipping_address"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}
