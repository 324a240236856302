// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, local storage, the backend API client, and the two
// state stores (session and cart) into an interactive REPL. Typical flow:
// restore the persisted session and cart, then execute user commands.
//
// Key features:
//   - Browse the catalog: list products, show one product
//   - Manage the cart: add, remove, change quantities, view totals
//   - Authenticate: register, login, logout
//   - Check out the cart as an order (login required)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
