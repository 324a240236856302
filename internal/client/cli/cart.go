package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Add fetches the product and puts it into the cart. Usage: add <id> [qty].
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: add <id> [qty]")
		return nil
	}

	quantity := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			printlnFn("Quantity must be a positive number")
			return nil
		}
		quantity = n
	}

	p, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		printlnFn(err)
		return err
	}

	a.cart.AddItem(ctx, *p, quantity)
	printlnFn(fmt.Sprintf("Added %s (cart: %d items)", p.Name, a.cart.ItemCount()))
	return nil
}

// Cart prints the cart lines and totals.
func (a *App) Cart(ctx context.Context) error {
	items := a.cart.Items()
	if len(items) == 0 {
		printlnFn("Your cart is empty")
		return nil
	}

	for _, item := range items {
		printlnFn(fmt.Sprintf("%-12s %-28s %3d × $%s = $%s",
			item.ProductID, item.Name, item.Quantity,
			item.Price.StringFixed(2), item.Subtotal().StringFixed(2)))
	}
	printlnFn(fmt.Sprintf("%d items, total $%s", a.cart.ItemCount(), a.cart.Total().StringFixed(2)))
	return nil
}

// Remove drops a line from the cart. Usage: remove <id>.
func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: remove <id>")
		return nil
	}
	a.cart.RemoveItem(ctx, args[0])
	printlnFn(fmt.Sprintf("Cart: %d items", a.cart.ItemCount()))
	return nil
}

// Qty changes a line's quantity; 0 removes the line. Usage: qty <id> <n>.
func (a *App) Qty(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: qty <id> <n>")
		return nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		printlnFn("Quantity must be a number")
		return nil
	}
	a.cart.UpdateQuantity(ctx, args[0], n)
	printlnFn(fmt.Sprintf("Cart: %d items", a.cart.ItemCount()))
	return nil
}
