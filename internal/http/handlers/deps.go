package handlers

import (
	"tienda/internal/app"
	"tienda/internal/catalog"
)

type Deps struct {
	Product  *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Auth     *AuthHandler
	Nav      *NavHandler
}

func NewDeps(states *app.Registry, cat *catalog.Client) *Deps {
	return &Deps{
		Product:  &ProductHandler{Catalog: cat},
		Cart:     &CartHandler{States: states, Catalog: cat},
		Checkout: &CheckoutHandler{States: states},
		Auth:     &AuthHandler{States: states},
		Nav:      &NavHandler{States: states},
	}
}
