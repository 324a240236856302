package models

import "github.com/shopspring/decimal"

// ShippingAddress is the delivery address collected at checkout. All fields
// are required; validation happens in the checkout service before the order
// is submitted.
type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// OrderUser identifies the buyer inside the order payload.
type OrderUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItem is a snapshot of a cart line at the time the order is placed.
// Product holds the product id.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Product  string          `json:"product"`
}

// Order is the payload of POST /orders. The price breakdown is computed by
// the checkout service and must satisfy
// TotalPrice = ItemsPrice + ShippingPrice + TaxPrice.
type Order struct {
	User            OrderUser       `json:"user"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TaxPrice        decimal.Decimal `json:"taxPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}
