package services

import (
	"log"
	"sync"

	"tienda/internal/domain"
)

// View identifies one of the storefront screens.
type View string

const (
	ViewProducts          View = "products"
	ViewProductDetail     View = "productDetail"
	ViewCart              View = "cart"
	ViewCheckout          View = "checkout"
	ViewOrderConfirmation View = "orderConfirmation"
	ViewLogin             View = "login"
	ViewRegister          View = "register"
	ViewCategories        View = "categories"
	ViewProfile           View = "profile"
)

func (v View) known() bool {
	switch v {
	case ViewProducts, ViewProductDetail, ViewCart, ViewCheckout,
		ViewOrderConfirmation, ViewLogin, ViewRegister, ViewCategories,
		ViewProfile:
		return true
	}
	return false
}

// Payload is the data a navigation transition hands to its destination view.
// Only productDetail and orderConfirmation carry one; the type tag makes it
// impossible to deliver the wrong shape to a view.
type Payload interface{ isPayload() }

type ProductDetailPayload struct {
	ProductID int
}

type OrderConfirmationPayload struct {
	Order domain.OrderConfirmation
}

func (ProductDetailPayload) isPayload()     {}
func (OrderConfirmationPayload) isPayload() {}

// Scroller receives the cosmetic scroll-to-top signal after each transition.
// It is optional and plays no part in navigation correctness.
type Scroller interface {
	ScrollToTop()
}

// ScrollFunc adapts a plain function to the Scroller interface.
type ScrollFunc func()

func (f ScrollFunc) ScrollToTop() { f() }

// Navigator tracks which screen is visible and the payload it was entered
// with. Payload slots are reset on every transition, so a stale product id or
// confirmation record can never leak into a freshly entered view.
type Navigator struct {
	mu         sync.Mutex
	current    View
	productID  int
	hasProduct bool
	order      *domain.OrderConfirmation

	scroller Scroller
}

// NewNavigator starts at the products view with no payload. scroller may be
// nil.
func NewNavigator(scroller Scroller) *Navigator {
	return &Navigator{current: ViewProducts, scroller: scroller}
}

// NavigateTo switches the current view. data is only honored when its type
// matches the destination view; everything else leaves the payload slots
// empty. Unknown views fall back to products.
func (n *Navigator) NavigateTo(view View, data Payload) {
	if !view.known() {
		log.Printf("[nav] unknown view %q, showing products", view)
		view = ViewProducts
		data = nil
	}

	n.mu.Lock()
	n.current = view
	n.hasProduct = false
	n.productID = 0
	n.order = nil
	switch p := data.(type) {
	case ProductDetailPayload:
		if view == ViewProductDetail {
			n.productID = p.ProductID
			n.hasProduct = true
		}
	case OrderConfirmationPayload:
		if view == ViewOrderConfirmation {
			o := p.Order
			n.order = &o
		}
	}
	n.mu.Unlock()

	if n.scroller != nil {
		n.scroller.ScrollToTop()
	}
}

func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// ProductID returns the product id the productDetail view was entered with.
func (n *Navigator) ProductID() (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.productID, n.hasProduct
}

// Confirmation returns the order record the orderConfirmation view was
// entered with.
func (n *Navigator) Confirmation() (domain.OrderConfirmation, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.order == nil {
		return domain.OrderConfirmation{}, false
	}
	return *n.order, true
}
