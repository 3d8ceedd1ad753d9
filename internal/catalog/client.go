// Package catalog talks to the upstream product API. The wire format uses
// Spanish field names (id_producto, titulo, precio...) and is normalized into
// domain.Product here so nothing else in the app sees it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"tienda/internal/domain"
)

// FetchError is a network or HTTP-level failure retrieving catalog data.
// Status is zero when the request never reached the server.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog request failed with status %d", e.Status)
	}
	return fmt.Sprintf("catalog request failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotFoundError marks a product id the API does not know. It is distinct
// from FetchError so the detail view can show "no longer available" instead
// of a generic failure.
type NotFoundError struct {
	ProductID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient points at the API base URL (".../api"). The upstream enforces no
// timeout of its own, so the client sets one.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reviewJSON struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type productJSON struct {
	IDProducto          int          `json:"id_producto"`
	Titulo              string       `json:"titulo"`
	Precio              float64      `json:"precio"`
	Stock               int          `json:"stock"`
	Descripcion         string       `json:"descripcion"`
	NombreCategoria     string       `json:"nombre_categoria"`
	ImagenURL           string       `json:"imagen_url"`
	ImageURL            string       `json:"imageUrl"`
	FotoURL             string       `json:"foto_url"`
	ImagenesAdicionales []string     `json:"imagenes_adicionales"`
	Reviews             []reviewJSON `json:"reviews"`
}

func (p productJSON) toDomain() domain.Product {
	// The API is inconsistent about the image field name.
	img := p.ImagenURL
	if img == "" {
		img = p.ImageURL
	}
	if img == "" {
		img = p.FotoURL
	}
	stock := p.Stock
	if stock < 0 {
		stock = 0
	}
	out := domain.Product{
		ID:          p.IDProducto,
		Name:        p.Titulo,
		Price:       p.Precio,
		Stock:       stock,
		Category:    p.NombreCategoria,
		ImageURL:    img,
		Description: p.Descripcion,
		Images:      p.ImagenesAdicionales,
	}
	for _, r := range p.Reviews {
		out.Reviews = append(out.Reviews, domain.Review{User: r.User, Rating: r.Rating, Comment: r.Comment})
	}
	return out
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/productos", nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	var raw []productJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decode products: %w", err)}
	}
	out := make([]domain.Product, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// Product fetches one product with its extra images and reviews. A 404 maps
// to NotFoundError.
func (c *Client) Product(ctx context.Context, id int) (domain.Product, error) {
	url := fmt.Sprintf("%s/productos/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Product{}, &FetchError{Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Product{}, &FetchError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return domain.Product{}, &NotFoundError{ProductID: id}
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Product{}, &FetchError{Status: resp.StatusCode}
	}

	var raw productJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.Product{}, &FetchError{Err: fmt.Errorf("decode product %d: %w", id, err)}
	}
	return raw.toDomain(), nil
}

// CategoryGroup is the categories view's data: products bucketed by their
// category label.
type CategoryGroup struct {
	Name     string           `json:"name"`
	Products []domain.Product `json:"products"`
}

// Categories groups the catalog by category label, sorted by name.
// Uncategorized products land in a group with an empty name.
func (c *Client) Categories(ctx context.Context) ([]CategoryGroup, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string][]domain.Product)
	for _, p := range products {
		byName[p.Category] = append(byName[p.Category], p)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryGroup{Name: name, Products: byName[name]})
	}
	return out, nil
}
