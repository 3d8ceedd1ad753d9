package catalog

import (
	"context"
	"sync"

	"tienda/internal/domain"
)

// Fetcher is the slice of Client the loader needs.
type Fetcher interface {
	Product(ctx context.Context, id int) (domain.Product, error)
}

// Result is the outcome of the most recently completed detail fetch.
type Result struct {
	ProductID int
	Product   domain.Product
	Err       error
}

// Loader serializes product-detail fetches for one session. Starting a new
// load cancels the in-flight request, and a response from a superseded load
// is discarded instead of overwriting newer state — clicking product B right
// after product A must never leave A's data on screen.
type Loader struct {
	fetcher Fetcher

	mu       sync.Mutex
	gen      uint64
	doneGen  uint64
	cancel   context.CancelFunc
	result   *Result
	inflight sync.WaitGroup
}

func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load starts fetching id in the background, cancelling any fetch still in
// flight. The loader owns the request lifetime, so the fetch survives the
// triggering HTTP request.
func (l *Loader) Load(id int) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		defer cancel()
		p, err := l.fetcher.Product(ctx, id)

		l.mu.Lock()
		defer l.mu.Unlock()
		if gen > l.doneGen {
			l.doneGen = gen
		}
		if gen != l.gen {
			// A newer load superseded this one; drop the late response.
			return
		}
		l.result = &Result{ProductID: id, Product: p, Err: err}
	}()
}

// Current returns the latest completed result. ok is false while the first
// load is still in flight or nothing was ever loaded.
func (l *Loader) Current() (Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.result == nil {
		return Result{}, false
	}
	return *l.result, true
}

// Loading reports whether the most recent load is still in flight.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen > l.doneGen
}

// Wait blocks until all started loads have finished. Test hook.
func (l *Loader) Wait() {
	l.inflight.Wait()
}
