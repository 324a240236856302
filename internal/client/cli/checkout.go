package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Checkout collects a shipping address and payment method, then places the
// cart as an order. On failure the cart is left intact and the user is told
// to retry; a failed order is never presented as placed.
func (a *App) Checkout(ctx context.Context) error {
	if a.cart.ItemCount() == 0 {
		printlnFn("Your cart is empty")
		return nil
	}

	address, err := getSimpleText(a.reader, "Street address", os.Stdout)
	if err != nil {
		return err
	}
	city, err := getSimpleText(a.reader, "City", os.Stdout)
	if err != nil {
		return err
	}
	postalCode, err := getSimpleText(a.reader, "Postal code", os.Stdout)
	if err != nil {
		return err
	}
	country, err := getSimpleText(a.reader, "Country", os.Stdout)
	if err != nil {
		return err
	}
	paymentMethod, err := getSimpleText(a.reader, "Payment method (default: Credit Card)", os.Stdout)
	if err != nil {
		return err
	}
	if paymentMethod == "" {
		paymentMethod = "Credit Card"
	}

	addr := models.ShippingAddress{
		Address:    address,
		City:       city,
		PostalCode: postalCode,
		Country:    country,
	}

	total := a.cart.Total()
	orderID, err := a.checkout.PlaceOrder(ctx, addr, paymentMethod)
	if err != nil {
		printlnFn("Order was not placed:", err)
		printlnFn("Your cart is unchanged; please try again.")
		return err
	}

	printlnFn(fmt.Sprintf("Order %s placed! Items total was $%s.", orderID, total.StringFixed(2)))
	return nil
}
