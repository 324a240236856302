// Package checkout submits orders built from the current cart and session.
// It is the collaborator that bridges the two stores: the stores themselves
// stay independent of each other.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("login required to place an order")
)

var (
	flatShipping = decimal.RequireFromString("5.00")
	taxRate      = decimal.RequireFromString("0.1")
)

type Service struct {
	api      api.Client
	cart     *cart.Store
	session  *session.Store
	validate *validator.Validate
	log      logging.Logger
}

func NewService(apiClient api.Client, cartStore *cart.Store, sessionStore *session.Store, log logging.Logger) *Service {
	return &Service{
		api:      apiClient,
		cart:     cartStore,
		session:  sessionStore,
		validate: validator.New(),
		log:      log.With("component", "checkout"),
	}
}

// PlaceOrder validates the shipping address, builds the order payload from
// the current cart, and submits it. The cart is cleared only after the
// server confirms the order; on any failure the error is returned and the
// cart is left intact so the user can retry. A failed submission is never
// reported as success.
func (s *Service) PlaceOrder(ctx context.Context, addr models.ShippingAddress, paymentMethod string) (string, error) {
	if err := s.validate.Struct(addr); err != nil {
		return "", fmt.Errorf("please fill in all shipping details: %w", err)
	}

	user := s.session.User()
	if user == nil {
		return "", ErrNotAuthenticated
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	order := s.buildOrder(user, items, addr, paymentMethod)

	s.log.Info(ctx, "placing order", "items", len(order.OrderItems), "total", order.TotalPrice)

	orderID, err := s.api.CreateOrder(ctx, order)
	if err != nil {
		s.log.Warn(ctx, "order submission failed", "error", err)
		return "", err
	}

	s.cart.Clear(ctx)

	if orderID == "" {
		// Server confirmed but omitted an id; fall back to a client
		// reference so the confirmation screen has something to show.
		orderID = "ORD-" + uuid.NewString()
	}

	s.log.Info(ctx, "order placed", "order_id", orderID)
	return orderID, nil
}

func (s *Service) buildOrder(user *models.User, items []models.CartItem, addr models.ShippingAddress, paymentMethod string) models.Order {
	orderItems := make([]models.OrderItem, len(items))
	itemsPrice := decimal.Zero
	for i, item := range items {
		orderItems[i] = models.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Image:    item.Image,
			Price:    item.Price,
			Product:  item.ProductID,
		}
		itemsPrice = itemsPrice.Add(item.Subtotal())
	}

	taxPrice := itemsPrice.Mul(taxRate).Round(2)

	return models.Order{
		User:            models.OrderUser{ID: user.ID, Name: user.Name, Email: user.Email},
		OrderItems:      orderItems,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   flatShipping,
		TaxPrice:        taxPrice,
		TotalPrice:      itemsPrice.Add(flatShipping).Add(taxPrice),
	}
}
