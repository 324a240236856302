package models

import "github.com/shopspring/decimal"

// Product is a catalog entry. CountInStock == 0 means the backend did not
// report availability; cart quantity clamping is skipped in that case.
type Product struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	CountInStock int             `json:"countInStock"`
	Rating       float64         `json:"rating,omitempty"`
	NumReviews   int             `json:"numReviews,omitempty"`
}
