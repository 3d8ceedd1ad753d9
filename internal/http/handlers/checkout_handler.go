package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tienda/internal/app"
	applog "tienda/internal/log"
	"tienda/internal/services"
)

type CheckoutHandler struct {
	States *app.Registry
}

// Submit runs the checkout. On success the session's navigation already
// points at the confirmation view; the response carries the confirmation
// record for the renderer.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	var form services.ShippingForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	conf, err := st.Checkout.SubmitOrder(c.Context(), st.Cart.Lines(), form)
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		applog.Security(c, "checkout.validation.fail", map[string]any{"missing": vErr.Missing})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "checkout incomplete",
			"missing": vErr.Missing,
		})
	}
	var cErr *services.CheckoutError
	if errors.As(err, &cErr) {
		// Cart is untouched; the user can retry.
		applog.Error(c, "checkout.submit.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": cErr.Error()})
	}
	if err != nil {
		applog.Error(c, "checkout.submit.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout failed"})
	}

	applog.Audit(c, "checkout.submit", map[string]any{"order_id": conf.OrderID, "total": conf.Total})
	return c.JSON(conf)
}
