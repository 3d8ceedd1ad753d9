package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tienda/internal/app"
	applog "tienda/internal/log"
	"tienda/internal/services"
	"tienda/internal/validate"
)

type AuthHandler struct {
	States *app.Registry
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(services.LoginResult{Message: "invalid email or password"})
	}

	res := st.Session.Login(c.Context(), email, req.Password)
	if !res.Success {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(res)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(res)
}

type registerRequest struct {
	services.RegistrationForm
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	email, ok := validate.Email(req.Email)
	if req.Name == "" || !ok {
		return c.Status(fiber.StatusBadRequest).JSON(services.RegisterResult{Message: "name, email and password are required"})
	}
	if !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(services.RegisterResult{Message: "password must be at least 6 characters"})
	}
	if req.Password != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(services.RegisterResult{Message: "passwords do not match"})
	}
	req.Email = email

	res := st.Session.Register(c.Context(), req.RegistrationForm)
	if !res.Success {
		applog.Security(c, "auth.register.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}
	applog.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	st := h.States.Get(ensureSID(c))
	st.Session.Logout()
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"success": true})
}
