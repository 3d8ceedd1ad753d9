package domain

// Product is read-only catalog data sourced from the upstream API.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Reviews     []Review `json:"reviews,omitempty"`
}

type Review struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"` // 1-5
	Comment string `json:"comment"`
}

// CartLine aggregates one product inside a cart. Name, price, image and stock
// are snapshots taken when the product was last added, so later catalog
// changes do not move lines already in the cart.
type CartLine struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

const OrderStatusPending = "pending"

// OrderItem is one line of the payload sent to the order-creation
// collaborator. UnitPrice is the price at add time, not the current price.
type OrderItem struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	Total  float64     `json:"total"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}

// OrderConfirmation is handed to the confirmation view once and then
// discarded; it is never persisted.
type OrderConfirmation struct {
	OrderID string  `json:"orderId"`
	Total   float64 `json:"total"`
}
