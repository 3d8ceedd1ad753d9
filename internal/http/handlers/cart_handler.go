package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tienda/internal/app"
	"tienda/internal/catalog"
	applog "tienda/internal/log"
	"tienda/internal/services"
	"tienda/internal/validate"
)

type CartHandler struct {
	States  *app.Registry
	Catalog *catalog.Client
}

type addRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Add fetches the product from the catalog and merges it into the session's
// cart. Stock violations come back clamped, never as errors.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	var req addRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	p, err := h.Catalog.Product(c.Context(), req.ProductID)
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product_id": req.ProductID})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not load product"})
	}

	qty, clamped := st.Cart.Add(p, req.Quantity)
	if clamped {
		applog.Info(c, "cart.add.clamped", map[string]any{"product_id": p.ID, "stock": p.Stock})
	}
	return c.JSON(fiber.Map{
		"quantity":  qty,
		"clamped":   clamped,
		"itemCount": st.Cart.ItemCount(),
	})
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	st.Cart.UpdateQuantity(id, req.Quantity)
	return h.view(c, st)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	st.Cart.Remove(id)
	return h.view(c, st)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return h.view(c, h.States.Get(ensureSID(c)))
}

func (h *CartHandler) view(c *fiber.Ctx, st *app.State) error {
	lines := st.Cart.Lines()
	subtotal := services.Subtotal(lines)
	shipping := 0.0
	if len(lines) > 0 {
		shipping = services.ShippingFee
	}
	return c.JSON(fiber.Map{
		"items":     lines,
		"subtotal":  subtotal,
		"shipping":  shipping,
		"total":     subtotal + shipping,
		"itemCount": st.Cart.ItemCount(),
	})
}
