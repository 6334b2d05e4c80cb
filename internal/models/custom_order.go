package models

import "time"

// Measurements holds the six tailoring measurements in centimetres. All
// six are required on creation.
type Measurements struct {
	Chest     float64 `json:"chest"`
	Shoulder  float64 `json:"shoulder"`
	Waist     float64 `json:"waist"`
	Inseam    float64 `json:"inseam"`
	ArmLength float64 `json:"arm_length"`
	LegLength float64 `json:"leg_length"`
}

// CustomOrder is a made-to-measure tailoring order. OrderID is the
// human-readable identifier (CO<YY><MM><NNNN>) generated by the creation
// workflow; it is never client-supplied.
type CustomOrder struct {
	ID                  int64        `json:"id"`
	OrderID             string       `json:"order_id"`
	DesignerID          int64        `json:"designer_id"`
	UserID              int64        `json:"user_id"`
	BrandID             int64        `json:"brand_id"`
	ProductID           int64        `json:"product_id"`
	FullName            string       `json:"full_name"`
	Phone               string       `json:"phone"`
	Email               string       `json:"email"`
	Address             string       `json:"address"`
	GarmentType         string       `json:"garment_type"`
	Occasion            string       `json:"occasion"`
	Fabric              string       `json:"fabric"`
	Color               string       `json:"color"`
	Pattern             string       `json:"pattern"`
	Fitting             string       `json:"fitting"`
	Measurements        Measurements `json:"measurements"`
	SpecialInstructions *string      `json:"special_instructions,omitempty"`
	DeliveryPreference  string       `json:"delivery_preference"`
	PaymentMethod       string       `json:"payment_method"`
	RushOrder           bool         `json:"rush_order"`
	ConsultationDate    time.Time    `json:"consultation_date"`
	Status              string       `json:"status"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// CustomOrderDetail is a custom order with its four references resolved
// into lightweight projections.
type CustomOrderDetail struct {
	CustomOrder
	Designer *DesignerSummary `json:"designer,omitempty"`
	Customer *UserSummary     `json:"customer,omitempty"`
	Brand    *BrandSummary    `json:"brand,omitempty"`
	Product  *ProductSummary  `json:"product,omitempty"`
}
