package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tienda/internal/accounts"
	"tienda/internal/app"
	"tienda/internal/catalog"
	"tienda/internal/config"
	"tienda/internal/gateway"
	"tienda/internal/http/handlers"
	applog "tienda/internal/log"
	"tienda/internal/services"
	"tienda/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := store.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Collaborators
	cat := catalog.NewClient(cfg.APIBaseURL)
	auth := accounts.NewSimAuth(db, cfg.JWTSecret, 24*time.Hour)
	registrar := accounts.NewRegistrar(cfg.APIBaseURL)
	sim := &gateway.SimulatedOrders{Delay: cfg.OrderDelay}

	// Per-session application state
	states := app.NewRegistry(func(sid string) *app.State {
		nav := services.NewNavigator(nil)
		sess := services.NewSessionStore(auth, registrar, services.TrustingVerifier{}, store.NewKV(db, sid), nav)
		sess.Rehydrate(context.Background())

		// Orders go to the live endpoint when one is configured, with the
		// session's own token; the simulated creator otherwise.
		var orders services.OrderCreator = sim
		if cfg.OrdersURL != "" {
			orders = gateway.NewHTTPOrders(cfg.OrdersURL, func() string {
				tok, _ := sess.Token()
				return tok
			})
		}
		return &app.State{
			Cart:     services.NewCart(),
			Nav:      nav,
			Session:  sess,
			Checkout: services.NewCheckout(orders, nav),
			Detail:   catalog.NewLoader(cat),
		}
	})

	appsrv := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	appsrv.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	appsrv.Use(requestid.New())
	appsrv.Use(logger.New())
	appsrv.Use(helmet.New())
	appsrv.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(states, cat)
	api := appsrv.Group("/api")

	api.Get("/products", deps.Product.List)
	api.Get("/products/:id", deps.Product.Detail)
	api.Get("/categories", deps.Product.Categories)

	api.Get("/cart", deps.Cart.View)
	api.Post("/cart", deps.Cart.Add)
	api.Put("/cart/:id", deps.Cart.Update)
	api.Delete("/cart/:id", deps.Cart.Remove)

	api.Post("/checkout", deps.Checkout.Submit)

	api.Post("/navigate", deps.Nav.Navigate)
	api.Get("/view", deps.Nav.CurrentView)

	api.Post("/register", deps.Auth.Register)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.Auth.Login)
	api.Post("/logout", deps.Auth.Logout)

	appsrv.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	appsrv.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(appsrv.Listen(":" + cfg.Port))
}
