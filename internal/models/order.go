package models

import "time"

// OrderItem is a snapshot of a cart line taken when the order is placed.
type OrderItem struct {
	Product  string  `json:"product" bson:"product"`
	Name     string  `json:"name" bson:"name"`
	Image    string  `json:"image" bson:"image"`
	Price    float64 `json:"price" bson:"price"` // Price at the time of order
	Quantity int     `json:"quantity" bson:"quantity"`
	Size     string  `json:"size,omitempty" bson:"size,omitempty"`
}

type ShippingAddress struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

// PaymentResult is the opaque payload reported by the payment gateway.
type PaymentResult struct {
	ID           string `json:"id" bson:"id"`
	Status       string `json:"status" bson:"status"`
	UpdateTime   string `json:"update_time" bson:"updateTime"`
	EmailAddress string `json:"email_address" bson:"emailAddress"`
}

// Order represents a customer order. Prices are fixed at creation time.
type Order struct {
	ID              string          `json:"_id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	User            string          `json:"user" gorm:"column:user_id;index;type:varchar(36)" bson:"user"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"serializer:json;type:text" bson:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"serializer:json;type:text" bson:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice" bson:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool            `json:"isPaid" gorm:"index" bson:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" gorm:"serializer:json;type:text" bson:"paymentResult,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	TrackingNumber  string          `json:"trackingNumber" bson:"trackingNumber"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"index" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}
