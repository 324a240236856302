// Package storage provides the durable key-value surface backing the
// session and cart stores, persisted in a local SQLite database. Absence of
// a key is never an error: Get returns (nil, nil).
package storage

import "context"

// Well-known keys. All three are independently readable and writable; a
// missing key means "no session" or "empty cart".
const (
	KeyToken     = "token"
	KeyUserInfo  = "userInfo"
	KeyCartItems = "cartItems"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
