package handlers_test

import (
	"net/http"
	"testing"
)

type detailView struct {
	View      string `json:"view"`
	ProductID int    `json:"productId"`
	Detail    *struct {
		Loading bool `json:"loading"`
		Product *struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"product"`
		Error string `json:"error"`
	} `json:"detail"`
}

func TestNavigateToProductDetail(t *testing.T) {
	e := newEnv(t, nil)

	resp := e.do("POST", "/api/navigate", map[string]any{"view": "productDetail", "productId": 5})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("navigate: expected 200, got %d", resp.StatusCode)
	}
	var nav struct {
		View string `json:"view"`
	}
	decode(t, resp, &nav)
	if nav.View != "productDetail" {
		t.Fatalf("expected productDetail, got %q", nav.View)
	}

	e.state().Detail.Wait()

	var view detailView
	decode(t, e.do("GET", "/api/view", nil), &view)
	if view.ProductID != 5 {
		t.Fatalf("expected productId 5, got %d", view.ProductID)
	}
	if view.Detail == nil || view.Detail.Loading {
		t.Fatalf("detail still loading: %+v", view.Detail)
	}
	if view.Detail.Product == nil || view.Detail.Product.Name != "Teclado Mecánico" {
		t.Fatalf("unexpected detail: %+v", view.Detail)
	}
}

func TestNavigateDetailOfMissingProduct(t *testing.T) {
	e := newEnv(t, nil)
	e.do("POST", "/api/navigate", map[string]any{"view": "productDetail", "productId": 999})
	e.state().Detail.Wait()

	var view detailView
	decode(t, e.do("GET", "/api/view", nil), &view)
	if view.Detail == nil || view.Detail.Error == "" {
		t.Fatalf("expected a detail error, got %+v", view.Detail)
	}
	if view.Detail.Product != nil {
		t.Fatalf("no product expected, got %+v", view.Detail.Product)
	}
}

func TestNavigateUnknownViewFallsBack(t *testing.T) {
	e := newEnv(t, nil)
	var nav struct {
		View string `json:"view"`
	}
	decode(t, e.do("POST", "/api/navigate", map[string]any{"view": "warehouse"}), &nav)
	if nav.View != "products" {
		t.Fatalf("expected fallback to products, got %q", nav.View)
	}
}

func TestStaleDetailPayloadDoesNotSurviveRoundTrip(t *testing.T) {
	e := newEnv(t, nil)
	e.do("POST", "/api/navigate", map[string]any{"view": "productDetail", "productId": 5})
	e.do("POST", "/api/navigate", map[string]any{"view": "cart"})
	e.do("POST", "/api/navigate", map[string]any{"view": "productDetail"})
	e.state().Detail.Wait()

	var view detailView
	decode(t, e.do("GET", "/api/view", nil), &view)
	if view.View != "productDetail" {
		t.Fatalf("expected productDetail, got %q", view.View)
	}
	if view.ProductID != 0 {
		t.Fatalf("old product id leaked back: %d", view.ProductID)
	}
}

func TestProductEndpoints(t *testing.T) {
	e := newEnv(t, nil)

	var products []struct {
		ID    int     `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	decode(t, e.do("GET", "/api/products", nil), &products)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	var p struct {
		ID     int      `json:"id"`
		Images []string `json:"images"`
	}
	decode(t, e.do("GET", "/api/products/5", nil), &p)
	if p.ID != 5 || len(p.Images) != 1 {
		t.Fatalf("unexpected detail: %+v", p)
	}

	if resp := e.do("GET", "/api/products/999", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if resp := e.do("GET", "/api/products/abc", nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var groups []struct {
		Name     string `json:"name"`
		Products []struct {
			ID int `json:"id"`
		} `json:"products"`
	}
	decode(t, e.do("GET", "/api/categories", nil), &groups)
	if len(groups) != 1 || groups[0].Name != "Periféricos" || len(groups[0].Products) != 2 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}
