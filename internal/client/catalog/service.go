// Package catalog is a thin read service over the products API, shared by
// the browsing views.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

type Service struct {
	api api.Client
}

func NewService(apiClient api.Client) *Service {
	return &Service{api: apiClient}
}

// List returns up to limit products; limit <= 0 returns everything.
func (s *Service) List(ctx context.Context, limit int) ([]models.Product, error) {
	return s.api.ListProducts(ctx, limit)
}

// Get returns one product. A missing product is a displayable condition, not
// a retryable one; the id is included in the message shown to the user.
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.api.GetProduct(ctx, id)
	if errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("product %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
