package services

import (
	"context"
	"fmt"
	"strings"

	"tienda/internal/domain"
)

// ShippingFee is the flat fee charged on any non-empty cart.
const ShippingFee = 5.00

type ShippingForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ValidationError lists the checkout preconditions that failed. "cart" marks
// an empty cart; other entries are empty shipping-form fields.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "checkout incomplete: " + strings.Join(e.Missing, ", ")
}

// CheckoutError wraps an order-creation collaborator failure. The cart is
// left untouched so the user can retry.
type CheckoutError struct {
	Err error
}

func (e *CheckoutError) Error() string { return fmt.Sprintf("order creation failed: %v", e.Err) }
func (e *CheckoutError) Unwrap() error { return e.Err }

// OrderCreator is the external order-creation collaborator (simulated until
// the real endpoint lands).
type OrderCreator interface {
	CreateOrder(ctx context.Context, order domain.Order) (string, error)
}

// Checkout turns a cart plus a shipping form into an order confirmation and
// hands it to the navigator. It never clears the cart: that is the
// confirmation view's entry action, which keeps SubmitOrder free of side
// effects beyond the collaborator call and safe to retry.
type Checkout struct {
	creator OrderCreator
	nav     *Navigator
}

func NewCheckout(creator OrderCreator, nav *Navigator) *Checkout {
	return &Checkout{creator: creator, nav: nav}
}

// SubmitOrder validates, builds the order payload and invokes the
// order-creation collaborator. On success the navigator is moved to the
// orderConfirmation view carrying the confirmation record.
func (c *Checkout) SubmitOrder(ctx context.Context, lines []domain.CartLine, form ShippingForm) (domain.OrderConfirmation, error) {
	var missing []string
	if len(lines) == 0 {
		missing = append(missing, "cart")
	}
	for _, f := range []struct{ name, value string }{
		{"name", form.Name},
		{"email", form.Email},
		{"address", form.Address},
		{"city", form.City},
		{"postalCode", form.PostalCode},
		{"country", form.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.OrderConfirmation{}, &ValidationError{Missing: missing}
	}

	total := Subtotal(lines) + ShippingFee
	order := domain.Order{
		Total:  total,
		Status: domain.OrderStatusPending,
		Items:  make([]domain.OrderItem, 0, len(lines)),
	}
	for _, l := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
		})
	}

	orderID, err := c.creator.CreateOrder(ctx, order)
	if err != nil {
		return domain.OrderConfirmation{}, &CheckoutError{Err: err}
	}

	conf := domain.OrderConfirmation{OrderID: orderID, Total: total}
	c.nav.NavigateTo(ViewOrderConfirmation, OrderConfirmationPayload{Order: conf})
	return conf, nil
}
