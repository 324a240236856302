package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// envelope is the common part of every backend response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	envelope
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type profileResponse struct {
	envelope
	User *models.User `json:"user"`
}

type productsResponse struct {
	envelope
	Products []models.Product `json:"products"`
}

type productResponse struct {
	envelope
	Product *models.Product `json:"product"`
}

type orderResponse struct {
	envelope
	OrderID string `json:"orderId"`
	Order   *struct {
		ID string `json:"_id"`
	} `json:"order"`
}

// HTTPClient is the resty-backed implementation of Client. The underlying
// resty client owns the base URL, the request timeout, and the default
// Authorization header, mirroring the session lifetime.
type HTTPClient struct {
	rc *resty.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at baseURL. Every request
// carries a fresh X-Request-Id so failures can be correlated with backend
// logs.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader("X-Request-Id", uuid.NewString())
		return nil
	})

	return &HTTPClient{rc: rc}
}

func (c *HTTPClient) SetToken(token string) {
	c.rc.SetAuthToken(token)
}

func (c *HTTPClient) ClearToken() {
	c.rc.SetAuthToken("")
	c.rc.Header.Del("Authorization")
}

// execute runs one request and normalizes failures: transport errors wrap
// ErrUnavailable, 401 maps to ErrUnauthorized, 404 to ErrNotFound, and any
// other non-2xx surfaces the server message when one was sent.
func (c *HTTPClient) execute(ctx context.Context, method, path string, body, result any) error {
	var apiErr envelope

	req := c.rc.R().SetContext(ctx).SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		if apiErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		}
		return ErrUnauthorized
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	case resp.IsError():
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
		return fmt.Errorf("unexpected status %s", resp.Status())
	}

	return nil
}

// serverError turns an envelope-level failure (HTTP 200, success=false) into
// an error, falling back to a generic message when the server sent none.
func serverError(message, fallback string) error {
	if message != "" {
		return errors.New(message)
	}
	return errors.New(fallback)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var out authResponse
	if err := c.execute(ctx, resty.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, "", err
	}
	if !out.Success || out.User == nil || out.Token == "" {
		return nil, "", serverError(out.Message, "login failed")
	}
	return out.User, out.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	var out authResponse
	if err := c.execute(ctx, resty.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &out); err != nil {
		return nil, "", err
	}
	if !out.Success || out.User == nil || out.Token == "" {
		return nil, "", serverError(out.Message, "registration failed")
	}
	return out.User, out.Token, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var out profileResponse
	if err := c.execute(ctx, resty.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, out.Message)
	}
	return out.User, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	path := "/products"
	if limit > 0 {
		path = fmt.Sprintf("/products?limit=%d", limit)
	}

	var out productsResponse
	if err := c.execute(ctx, resty.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, serverError(out.Message, "failed to load products")
	}
	return out.Products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out productResponse
	if err := c.execute(ctx, resty.MethodGet, "/products/"+id, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Product == nil {
		return nil, ErrNotFound
	}
	return out.Product, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	var out orderResponse
	if err := c.execute(ctx, resty.MethodPost, "/orders", order, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", serverError(out.Message, "failed to place order")
	}
	if out.OrderID != "" {
		return out.OrderID, nil
	}
	if out.Order != nil {
		return out.Order.ID, nil
	}
	return "", nil
}
