// Package app owns the per-session application state. All cart, navigation,
// session and checkout mutations go through the component operations; nothing
// else writes their fields.
package app

import (
	"sync"

	"tienda/internal/catalog"
	"tienda/internal/services"
)

// State bundles the four state components for one browser session plus the
// product-detail loader that guards against stale responses.
type State struct {
	Cart     *services.Cart
	Nav      *services.Navigator
	Session  *services.SessionStore
	Checkout *services.Checkout
	Detail   *catalog.Loader
}

// ViewEntered runs a view's entry action. The confirmation view clears the
// cart on entry — deliberately not done during checkout, so a failed
// submission leaves the cart intact for retry.
func (s *State) ViewEntered(v services.View) {
	if v == services.ViewOrderConfirmation {
		s.Cart.Clear()
	}
}

// Factory builds the state for a new session id, including rehydrating any
// persisted session.
type Factory func(sid string) *State

// Registry maps browser session ids to their state, creating on first touch.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
	newFn  Factory
}

func NewRegistry(newFn Factory) *Registry {
	return &Registry{states: make(map[string]*State), newFn: newFn}
}

func (r *Registry) Get(sid string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[sid]; ok {
		return st
	}
	st := r.newFn(sid)
	r.states[sid] = st
	return st
}
