package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"tienda/internal/accounts"
	"tienda/internal/app"
	"tienda/internal/catalog"
	"tienda/internal/gateway"
	"tienda/internal/http/handlers"
	"tienda/internal/services"
	"tienda/internal/store"
)

// catalogStub imitates the upstream product API: two products, one of them
// nearly out of stock, plus the registration endpoint.
func catalogStub(t *testing.T) *httptest.Server {
	t.Helper()

	const list = `[
		{"id_producto":5,"titulo":"Teclado Mecánico","precio":10,"stock":2,"nombre_categoria":"Periféricos","imagen_url":"http://img/5.jpg"},
		{"id_producto":6,"titulo":"Mouse Gamer","precio":3.5,"stock":10,"nombre_categoria":"Periféricos","imagen_url":"http://img/6.jpg"}
	]`
	details := map[string]string{
		"5": `{"id_producto":5,"titulo":"Teclado Mecánico","precio":10,"stock":2,"nombre_categoria":"Periféricos","imagen_url":"http://img/5.jpg","imagenes_adicionales":["http://img/5b.jpg"]}`,
		"6": `{"id_producto":6,"titulo":"Mouse Gamer","precio":3.5,"stock":10,"nombre_categoria":"Periféricos","imagen_url":"http://img/6.jpg"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/productos", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, list)
	})
	mux.HandleFunc("/productos/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/productos/")
		body, ok := details[id]
		if !ok {
			http.Error(w, `{"error":"no existe"}`, http.StatusNotFound)
			return
		}
		io.WriteString(w, body)
	})
	mux.HandleFunc("/usuarios", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id_usuario":9,"nombre":"Luis","email":"luis@tienda.test"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// env wires a full application around the catalog stub and an in-memory
// database, and keeps the sid cookie across requests like a browser would.
type env struct {
	t      *testing.T
	app    *fiber.App
	states *app.Registry
	db     *sqlx.DB
	sid    string
}

func newEnv(t *testing.T, orders services.OrderCreator) *env {
	t.Helper()

	db, err := store.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return buildEnv(t, db, orders)
}

// newEnvSharingDB rebuilds the application on e's database with a fresh state
// registry, keeping the browser cookie — the shape of a server restart.
func newEnvSharingDB(t *testing.T, prev *env) *env {
	t.Helper()
	e := buildEnv(t, prev.db, nil)
	e.sid = prev.sid
	return e
}

func buildEnv(t *testing.T, db *sqlx.DB, orders services.OrderCreator) *env {
	t.Helper()

	stub := catalogStub(t)
	cat := catalog.NewClient(stub.URL)
	auth := accounts.NewSimAuth(db, "test-secret", time.Hour)
	registrar := accounts.NewRegistrar(stub.URL)
	if orders == nil {
		orders = &gateway.SimulatedOrders{}
	}

	states := app.NewRegistry(func(sid string) *app.State {
		nav := services.NewNavigator(nil)
		sess := services.NewSessionStore(auth, registrar, services.TrustingVerifier{}, store.NewKV(db, sid), nav)
		sess.Rehydrate(context.Background())
		return &app.State{
			Cart:     services.NewCart(),
			Nav:      nav,
			Session:  sess,
			Checkout: services.NewCheckout(orders, nav),
			Detail:   catalog.NewLoader(cat),
		}
	})

	fapp := fiber.New()
	deps := handlers.NewDeps(states, cat)
	api := fapp.Group("/api")
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
	api.Post("/login", deps.Auth.Login)
	api.Post("/logout", deps.Auth.Logout)

	return &env{t: t, app: fapp, states: states, db: db}
}

func (e *env) do(method, path string, body any) *http.Response {
	e.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: e.sid})
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	if e.sid == "" {
		e.sid = extractCookie(resp, "sid")
	}
	return resp
}

// state returns the session state behind the cookie. Only valid after the
// first request minted the sid.
func (e *env) state() *app.State {
	if e.sid == "" {
		e.t.Fatal("no sid yet; make a request first")
	}
	return e.states.Get(e.sid)
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
