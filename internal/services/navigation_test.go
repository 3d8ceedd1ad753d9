package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/internal/domain"
	"tienda/internal/services"
)

func TestNavigatorStartsAtProducts(t *testing.T) {
	nav := services.NewNavigator(nil)
	assert.Equal(t, services.ViewProducts, nav.Current())
	_, ok := nav.ProductID()
	assert.False(t, ok)
	_, ok = nav.Confirmation()
	assert.False(t, ok)
}

func TestNavigatorUnknownViewFallsBackToProducts(t *testing.T) {
	nav := services.NewNavigator(nil)
	nav.NavigateTo(services.View("warehouse"), nil)
	assert.Equal(t, services.ViewProducts, nav.Current())
	_, ok := nav.ProductID()
	assert.False(t, ok)
}

func TestNavigatorCarriesProductDetailPayload(t *testing.T) {
	nav := services.NewNavigator(nil)
	nav.NavigateTo(services.ViewProductDetail, services.ProductDetailPayload{ProductID: 7})

	assert.Equal(t, services.ViewProductDetail, nav.Current())
	id, ok := nav.ProductID()
	require.True(t, ok)
	assert.Equal(t, 7, id)
}

func TestNavigatorStalePayloadDoesNotResurrect(t *testing.T) {
	// detail(7) -> cart -> detail with no data: 7 must be gone
	nav := services.NewNavigator(nil)
	nav.NavigateTo(services.ViewProductDetail, services.ProductDetailPayload{ProductID: 7})
	nav.NavigateTo(services.ViewCart, nil)

	_, ok := nav.ProductID()
	assert.False(t, ok, "leaving productDetail clears its payload")

	nav.NavigateTo(services.ViewProductDetail, nil)
	assert.Equal(t, services.ViewProductDetail, nav.Current())
	_, ok = nav.ProductID()
	assert.False(t, ok, "re-entering without data must not revive the old id")
}

func TestNavigatorPayloadIgnoredOnWrongView(t *testing.T) {
	nav := services.NewNavigator(nil)
	nav.NavigateTo(services.ViewCart, services.ProductDetailPayload{ProductID: 3})

	assert.Equal(t, services.ViewCart, nav.Current())
	_, ok := nav.ProductID()
	assert.False(t, ok)

	nav.NavigateTo(services.ViewProductDetail, services.OrderConfirmationPayload{
		Order: domain.OrderConfirmation{OrderID: "ORD-X", Total: 1},
	})
	_, ok = nav.Confirmation()
	assert.False(t, ok)
}

func TestNavigatorCarriesConfirmation(t *testing.T) {
	nav := services.NewNavigator(nil)
	conf := domain.OrderConfirmation{OrderID: "ORD-SIM-12345", Total: 25.00}
	nav.NavigateTo(services.ViewOrderConfirmation, services.OrderConfirmationPayload{Order: conf})

	got, ok := nav.Confirmation()
	require.True(t, ok)
	assert.Equal(t, conf, got)

	nav.NavigateTo(services.ViewProducts, nil)
	_, ok = nav.Confirmation()
	assert.False(t, ok)
}

func TestNavigatorSignalsScrollOnEveryTransition(t *testing.T) {
	var scrolls int
	nav := services.NewNavigator(services.ScrollFunc(func() { scrolls++ }))

	nav.NavigateTo(services.ViewCart, nil)
	nav.NavigateTo(services.ViewCart, nil) // same view still scrolls
	nav.NavigateTo(services.View("nope"), nil)

	assert.Equal(t, 3, scrolls)
}
