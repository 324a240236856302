package cli

import (
	"context"
	"fmt"
)

// Products lists the catalog.
func (a *App) Products(ctx context.Context) error {
	products, err := a.catalog.List(ctx, 0)
	if err != nil {
		printlnFn("Failed to load products:", err)
		return err
	}
	if len(products) == 0 {
		printlnFn("No products available")
		return nil
	}

	for _, p := range products {
		stock := "out of stock"
		if p.CountInStock > 0 {
			stock = fmt.Sprintf("%d in stock", p.CountInStock)
		}
		printlnFn(fmt.Sprintf("%-12s %-28s %10s  %-16s %s",
			p.ID, p.Name, "$"+p.Price.StringFixed(2), p.Category, stock))
	}
	return nil
}

// Show prints one product in detail.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: show <id>")
		return nil
	}

	p, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		printlnFn(err)
		return err
	}

	printlnFn(fmt.Sprintf("%s - $%s [%s]", p.Name, p.Price.StringFixed(2), p.Category))
	if p.Description != "" {
		printlnFn(p.Description)
	}
	if p.NumReviews > 0 {
		printlnFn(fmt.Sprintf("Rating: %.1f (%d reviews)", p.Rating, p.NumReviews))
	}
	printlnFn(fmt.Sprintf("In stock: %d", p.CountInStock))
	return nil
}
