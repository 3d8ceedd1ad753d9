// Package gateway holds the order-creation collaborators. Deployments default
// to the simulated implementation while the upstream /ordenes endpoint is not
// live; setting ORDERS_URL switches to HTTPOrders.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tienda/internal/domain"
)

// SimulatedOrders waits a fixed artificial delay and hands back a generated
// order id, mimicking a processing backend.
type SimulatedOrders struct {
	Delay time.Duration
}

func (g *SimulatedOrders) CreateOrder(ctx context.Context, order domain.Order) (string, error) {
	if g.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.Delay):
		}
	}
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return "ORD-SIM-" + ms[len(ms)-5:], nil
}

// TokenSource supplies the bearer token for authenticated order creation.
// An empty string means no session.
type TokenSource func() string

// HTTPOrders posts orders to the upstream API. The wire format uses the
// API's Spanish field names; "pendiente" is the upstream spelling of the
// pending status.
type HTTPOrders struct {
	baseURL string
	token   TokenSource
	http    *http.Client
}

func NewHTTPOrders(baseURL string, token TokenSource) *HTTPOrders {
	return &HTTPOrders{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type orderPayload struct {
	Total    float64       `json:"total"`
	Estado   string        `json:"estado"`
	Detalles []orderDetail `json:"detalles"`
}

type orderDetail struct {
	IDProducto     int     `json:"id_producto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

type orderResponse struct {
	IDOrden json.Number `json:"id_orden"`
	Error   string      `json:"error"`
}

func (g *HTTPOrders) CreateOrder(ctx context.Context, order domain.Order) (string, error) {
	payload := orderPayload{Total: order.Total, Estado: "pendiente"}
	for _, it := range order.Items {
		payload.Detalles = append(payload.Detalles, orderDetail{
			IDProducto:     it.ProductID,
			Cantidad:       it.Quantity,
			PrecioUnitario: it.UnitPrice,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/ordenes", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != nil {
		if tok := g.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var decoded orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode order response: %w", err)
	}
	if decoded.Error != "" {
		return "", errors.New(decoded.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("order creation failed with status %d", resp.StatusCode)
	}
	return decoded.IDOrden.String(), nil
}
