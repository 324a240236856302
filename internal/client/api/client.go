// Package api implements the HTTP client for the storefront backend. All
// endpoints live under one base URL and answer JSON envelopes of the form
// {success, message, ...}. Authenticated endpoints expect a bearer token in
// the Authorization header; the token is attached once via SetToken and sent
// on every request until ClearToken.
package api

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Client defines the remote operations the stores and services need.
// Transport and authentication failures are reported through the sentinel
// errors in errors.go; use errors.Is to match them.
type Client interface {
	// Login authenticates with email/password and returns the user plus the
	// bearer token to persist.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// Register creates an account and, like Login, returns the established
	// session's user and token.
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)

	// Profile returns the user the current bearer token belongs to. It is
	// the session-restore verification call.
	Profile(ctx context.Context) (*models.User, error)

	// ListProducts returns the catalog; limit <= 0 means no limit.
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)

	// GetProduct returns a single product or ErrNotFound.
	GetProduct(ctx context.Context, id string) (*models.Product, error)

	// CreateOrder submits an order and returns the server's order id.
	CreateOrder(ctx context.Context, order models.Order) (string, error)

	// SetToken attaches the bearer token to all future requests.
	SetToken(token string)

	// ClearToken detaches the bearer token.
	ClearToken()
}
