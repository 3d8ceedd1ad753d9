package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tienda/internal/app"
	applog "tienda/internal/log"
	"tienda/internal/services"
)

type NavHandler struct {
	States *app.Registry
}

type navigateRequest struct {
	View      string `json:"view"`
	ProductID int    `json:"productId"`
}

// Navigate switches the session's current view. Entering productDetail with
// a product id also kicks off the background detail fetch.
func (h *NavHandler) Navigate(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	var req navigateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	view := services.View(req.View)
	var payload services.Payload
	if view == services.ViewProductDetail && req.ProductID > 0 {
		payload = services.ProductDetailPayload{ProductID: req.ProductID}
		st.Detail.Load(req.ProductID)
	}
	st.Nav.NavigateTo(view, payload)

	applog.Info(c, "nav.go", map[string]any{"view": string(st.Nav.Current())})
	return c.JSON(fiber.Map{
		"view":      st.Nav.Current(),
		"scrollTop": true, // cosmetic signal for the renderer
	})
}

// CurrentView returns the state the renderer needs to draw the active
// screen, and runs the view's entry action (the confirmation view clears the
// cart here).
func (h *NavHandler) CurrentView(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	view := st.Nav.Current()
	st.ViewEntered(view)

	out := fiber.Map{"view": view}
	switch view {
	case services.ViewProductDetail:
		if id, ok := st.Nav.ProductID(); ok {
			out["productId"] = id
		}
		detail := fiber.Map{"loading": st.Detail.Loading()}
		if res, ok := st.Detail.Current(); ok {
			if res.Err != nil {
				detail["error"] = res.Err.Error()
			} else {
				detail["product"] = res.Product
			}
		}
		out["detail"] = detail
	case services.ViewOrderConfirmation:
		if conf, ok := st.Nav.Confirmation(); ok {
			out["order"] = conf
		}
	}
	if u, ok := st.Session.User(); ok {
		out["user"] = u
	}
	out["itemCount"] = st.Cart.ItemCount()
	return c.JSON(out)
}
