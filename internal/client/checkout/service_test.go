package checkout

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE storage (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeAPI implements api.Client for checkout tests.
type fakeAPI struct {
	orderID  string
	orderErr error

	gotOrder    *models.Order
	orderCalls  int
	token       string
	loginUser   *models.User
	loginToken  string
	profileUser *models.User
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return f.loginUser, f.loginToken, nil
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	return nil, "", errors.New("not used")
}

func (f *fakeAPI) Profile(ctx context.Context) (*models.User, error) { return f.profileUser, nil }

func (f *fakeAPI) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return nil, nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	f.orderCalls++
	f.gotOrder = &order
	return f.orderID, f.orderErr
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) ClearToken()           { f.token = "" }

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Address:    "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "India",
	}
}

func setup(t *testing.T, fc *fakeAPI) (*Service, *cart.Store, *session.Store) {
	t.Helper()
	db := setupDB(t)
	repo := storage.NewSQLiteRepository(db)

	cartStore := cart.NewStore(repo, testLogger())
	sessionStore := session.NewStore(fc, db, testLogger())
	svc := NewService(fc, cartStore, sessionStore, testLogger())
	return svc, cartStore, sessionStore
}

func login(t *testing.T, fc *fakeAPI, s *session.Store) {
	t.Helper()
	fc.loginUser = &models.User{ID: "u1", Name: "Alice", Email: "a@example.com"}
	fc.loginToken = "tok-1"
	require.True(t, s.Login(context.Background(), "a@example.com", "pw").OK)
}

func addItems(t *testing.T, c *cart.Store) {
	t.Helper()
	ctx := context.Background()
	c.AddItem(ctx, models.Product{
		ID: "p1", Name: "Keyboard", Price: decimal.RequireFromString("10"), CountInStock: 5,
	}, 2)
	c.AddItem(ctx, models.Product{
		ID: "p2", Name: "Mouse", Price: decimal.RequireFromString("5.50"), CountInStock: 5,
	}, 1)
}

func TestPlaceOrder_Success(t *testing.T) {
	fc := &fakeAPI{orderID: "ord-1"}
	svc, cartStore, sessionStore := setup(t, fc)
	login(t, fc, sessionStore)
	addItems(t, cartStore)

	id, err := svc.PlaceOrder(context.Background(), validAddress(), "Credit Card")

	require.NoError(t, err)
	assert.Equal(t, "ord-1", id)
	assert.Empty(t, cartStore.Items(), "cart cleared after confirmed order")

	require.NotNil(t, fc.gotOrder)
	order := *fc.gotOrder
	assert.Equal(t, "u1", order.User.ID)
	assert.Equal(t, "Credit Card", order.PaymentMethod)
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "p1", order.OrderItems[0].Product)
	assert.True(t, order.ItemsPrice.Equal(decimal.RequireFromString("25.50")), "items: %s", order.ItemsPrice)
	assert.True(t, order.ShippingPrice.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, order.TaxPrice.Equal(decimal.RequireFromString("2.55")), "tax: %s", order.TaxPrice)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("33.05")), "total: %s", order.TotalPrice)
}

func TestPlaceOrder_FailureKeepsCart(t *testing.T) {
	fc := &fakeAPI{orderErr: errors.New("order service down")}
	svc, cartStore, sessionStore := setup(t, fc)
	login(t, fc, sessionStore)
	addItems(t, cartStore)

	_, err := svc.PlaceOrder(context.Background(), validAddress(), "Credit Card")

	require.Error(t, err, "a failed submission must not be masked as success")
	assert.Contains(t, err.Error(), "order service down")
	assert.Len(t, cartStore.Items(), 2, "cart untouched so the user can retry")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	fc := &fakeAPI{}
	svc, _, sessionStore := setup(t, fc)
	login(t, fc, sessionStore)

	_, err := svc.PlaceOrder(context.Background(), validAddress(), "Credit Card")

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, fc.orderCalls)
}

func TestPlaceOrder_NotAuthenticated(t *testing.T) {
	fc := &fakeAPI{}
	svc, cartStore, _ := setup(t, fc)
	addItems(t, cartStore)

	_, err := svc.PlaceOrder(context.Background(), validAddress(), "Credit Card")

	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, fc.orderCalls)
}

func TestPlaceOrder_MissingAddressFields(t *testing.T) {
	fc := &fakeAPI{}
	svc, cartStore, sessionStore := setup(t, fc)
	login(t, fc, sessionStore)
	addItems(t, cartStore)

	addr := validAddress()
	addr.City = ""

	_, err := svc.PlaceOrder(context.Background(), addr, "Credit Card")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "shipping details")
	assert.Zero(t, fc.orderCalls, "invalid input never reaches the backend")
}

func TestPlaceOrder_ServerOmitsID_ClientReferenceUsed(t *testing.T) {
	fc := &fakeAPI{orderID: ""}
	svc, cartStore, sessionStore := setup(t, fc)
	login(t, fc, sessionStore)
	addItems(t, cartStore)

	id, err := svc.PlaceOrder(context.Background(), validAddress(), "Credit Card")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "ORD-"), "got %q", id)
	assert.Empty(t, cartStore.Items())
}
