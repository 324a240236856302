package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Products(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	Remove(ctx context.Context, args []string) error
	Qty(ctx context.Context, args []string) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Checkout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the storefront CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always available:
//	  - help                - show available commands
//	  - products | p        - list the catalog
//	  - show <id>           - show one product
//	  - add <id> [qty]      - put a product into the cart
//	  - cart | c            - show the cart with totals
//	  - remove <id>         - drop a line from the cart
//	  - qty <id> <n>        - change a line's quantity (0 removes it)
//	  - exit | quit         - leave the program
//
//	Not logged in:
//	  - register            - create an account
//	  - login               - authenticate
//
//	Logged in:
//	  - checkout            - place the cart as an order
//	  - whoami              - show the current user
//	  - logout              - log out
//
// Checkout is gated here: the stores stay independent, so requiring a login
// before ordering is the REPL's job, not the cart's.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shop> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: (p)roducts, show <id>, add <id> [qty], (c)art, remove <id>, qty <id> <n>, exit")
			if a.isLoggedIn() {
				printlnFn("Account: checkout, whoami, logout")
			} else {
				printlnFn("Account: register, login")
			}

		case "p", "products":
			_ = a.Products(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "add":
			_ = a.Add(ctx, args)

		case "c", "cart":
			_ = a.Cart(ctx)

		case "remove":
			_ = a.Remove(ctx, args)

		case "qty":
			_ = a.Qty(ctx, args)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "checkout":
			if !a.isLoggedIn() {
				printlnFn("Please log in before checking out")
				continue
			}
			_ = a.Checkout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
