package services

import (
	"log"
	"sync"

	"tienda/internal/domain"
)

// Cart owns the cart line collection for one browser session. Handlers run on
// fiber's worker goroutines, so every mutation takes the mutex to keep the
// at-most-one-line-per-product invariant.
//
// Stock violations are clamped, never rejected: the storefront treats "you
// asked for more than we have" as best-effort, not as an error.
type Cart struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func NewCart() *Cart { return &Cart{} }

// Add puts quantity units of p into the cart, merging into an existing line
// for the same product and clamping the result to p.Stock. It returns the
// resulting line quantity (0 when nothing was added) and whether the stock
// ceiling clamped the request.
//
// Products without a usable id or with negative price/stock are logged and
// ignored.
func (c *Cart) Add(p domain.Product, quantity int) (int, bool) {
	if p.ID <= 0 || p.Price < 0 || p.Stock < 0 {
		log.Printf("[cart] ignoring add of invalid product id=%d", p.ID)
		return 0, false
	}
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ProductID != p.ID {
			continue
		}
		// The merge always re-applies the ceiling with the freshly known
		// stock, so a line can shrink here when stock dropped since the
		// last add.
		next := min(l.Quantity+quantity, p.Stock)
		clamped := next < l.Quantity+quantity
		if next < l.Quantity {
			log.Printf("[cart] stock for %q dropped to %d, line reduced", l.Name, p.Stock)
		} else if clamped {
			log.Printf("[cart] stock ceiling (%d) reached for %q", p.Stock, l.Name)
		}
		if next < 1 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return 0, true
		}
		c.lines[i].Quantity = next
		c.lines[i].Stock = p.Stock // ceiling is the stock known at last add
		return next, clamped
	}

	initial := min(quantity, p.Stock)
	if initial < 1 {
		log.Printf("[cart] %q is out of stock, nothing added", p.Name)
		return 0, true
	}
	c.lines = append(c.lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Stock:     p.Stock,
		Quantity:  initial,
	})
	return initial, initial < quantity
}

// UpdateQuantity replaces a line's quantity, clamped to the line's stored
// stock ceiling. A quantity below 1 deletes the line. Unknown product ids are
// a no-op.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ProductID != productID {
			continue
		}
		if quantity > l.Stock {
			log.Printf("[cart] quantity for %q clamped to stock %d", l.Name, l.Stock)
			quantity = l.Stock
		}
		if quantity < 1 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
		c.lines[i].Quantity = quantity
		return
	}
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. The confirmation view calls this once on entry.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Line returns the line for productID, if any.
func (c *Cart) Line(productID int) (domain.CartLine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return domain.CartLine{}, false
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Subtotal(c.lines)
}

// ItemCount is the sum of quantities, used for the header badge.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums price times quantity over lines. Rounding to two decimals is
// a display concern and happens at the presentation boundary, not here.
func Subtotal(lines []domain.CartLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
