package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tienda/internal/catalog"
	applog "tienda/internal/log"
	"tienda/internal/validate"
)

type ProductHandler struct {
	Catalog *catalog.Client
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.Products(c.Context())
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(products)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	p, err := h.Catalog.Product(c.Context(), id)
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		applog.Error(c, "products.detail.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not load product"})
	}
	return c.JSON(p)
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	groups, err := h.Catalog.Categories(c.Context())
	if err != nil {
		applog.Error(c, "products.categories.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not load categories"})
	}
	return c.JSON(groups)
}
