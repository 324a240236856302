package models

import "github.com/shopspring/decimal"

// CartItem is one product+quantity line of the cart. ProductID is the unique
// key: adding a product that is already present grows Quantity instead of
// appending a second line. Quantity is always >= 1; a line that would drop to
// zero is removed instead.
type CartItem struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	CountInStock int             `json:"countInStock"`
}

// NewCartItem builds a cart line for the given product.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ProductID:    p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Image:        p.Image,
		Category:     p.Category,
		Quantity:     quantity,
		CountInStock: p.CountInStock,
	}
}

// Subtotal returns price × quantity for this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
