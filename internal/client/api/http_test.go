package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 2*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLogin_Success(t *testing.T) {
	var gotBody map[string]string
	var gotRequestID string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]any{"id": "u1", "name": "Alice", "email": "a@example.com"},
			"token":   "tok-1",
		})
	})

	user, token, err := c.Login(context.Background(), "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "a@example.com", gotBody["email"])
	assert.Equal(t, "secret", gotBody["password"])
	assert.NotEmpty(t, gotRequestID)
}

func TestLogin_EnvelopeFailureSurfacesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": false,
			"message": "invalid email or password",
		})
	})

	_, _, err := c.Login(context.Background(), "a@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "bad credentials",
		})
	})

	_, _, err := c.Login(context.Background(), "a@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestLogin_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewHTTPClient(srv.URL, time.Second)
	srv.Close()

	_, _, err := c.Login(context.Background(), "a@example.com", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestProfile_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]any{"id": "u1", "name": "Alice"},
		})
	})

	c.SetToken("tok-1")
	user, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClearToken_DetachesHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success":  true,
			"products": []any{},
		})
	})

	c.SetToken("tok-1")
	c.ClearToken()

	_, err := c.ListProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListProducts_LimitQuery(t *testing.T) {
	var gotLimit string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		gotLimit = r.URL.Query().Get("limit")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"products": []map[string]any{
				{"_id": "p1", "name": "Keyboard", "price": 49.99, "countInStock": 3},
			},
		})
	})

	products, err := c.ListProducts(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "8", gotLimit)
	assert.Equal(t, "p1", products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("49.99")))
}

func TestGetProduct_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "product not found",
		})
	})

	_, err := c.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_ReturnsOrderID(t *testing.T) {
	var gotOrder models.Order
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotOrder))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"orderId": "ord-42",
		})
	})

	order := models.Order{
		PaymentMethod: "Credit Card",
		OrderItems: []models.OrderItem{
			{Name: "Keyboard", Quantity: 2, Price: decimal.RequireFromString("49.99"), Product: "p1"},
		},
	}
	id, err := c.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "ord-42", id)
	assert.Equal(t, "Credit Card", gotOrder.PaymentMethod)
	require.Len(t, gotOrder.OrderItems, 1)
	assert.Equal(t, 2, gotOrder.OrderItems[0].Quantity)
}

func TestCreateOrder_FallsBackToEmbeddedOrderID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"order":   map[string]any{"_id": "ord-77"},
		})
	})

	id, err := c.CreateOrder(context.Background(), models.Order{})
	require.NoError(t, err)
	assert.Equal(t, "ord-77", id)
}

func TestCreateOrder_ServerFailureIsNotMasked(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "order service down",
		})
	})

	_, err := c.CreateOrder(context.Background(), models.Order{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order service down")
}
