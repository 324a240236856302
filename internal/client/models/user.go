// Package models defines the storefront domain types: the authenticated user,
// catalog products, cart line items, and the order payload sent at checkout.
// Wire shapes (JSON tags) follow the backend API.
package models

// User is the authenticated account as reported by the backend. Users are
// never constructed locally; they come from login, registration, or the
// profile endpoint.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
