package service

import (
	"context"
	"sync"
	"time"

	"unifi/catalog/internal/debounce"
	"unifi/catalog/internal/domain"

	"github.com/benbjohnson/clock"
)

// DeliverFunc receives the suggestions for the latest committed input.
type DeliverFunc func(suggestions []domain.Suggestion, err error)

// Suggester debounces keystrokes into suggestion computations: only the
// trailing input after a quiet period is evaluated, and a closed
// suggester abandons any pending work so results of a superseded
// computation are never delivered.
type Suggester struct {
	service   *CatalogService
	debouncer *debounce.Debouncer
	deliver   DeliverFunc

	mu     sync.Mutex
	closed bool
}

func NewSuggester(svc *CatalogService, clk clock.Clock, quiet time.Duration, deliver DeliverFunc) *Suggester {
	return &Suggester{
		service:   svc,
		debouncer: debounce.New(clk, quiet),
		deliver:   deliver,
	}
}

// Input registers a keystroke. The suggestion computation runs after
// the quiet period unless a newer input supersedes it.
func (sg *Suggester) Input(ctx context.Context, text string) {
	sg.debouncer.Trigger(func() {
		if sg.isClosed() {
			return
		}

		suggestions, err := sg.service.Suggest(ctx, text)

		// Close may land while the computation is blocked in a cache
		// fill; the result is then abandoned, not delivered.
		if sg.isClosed() {
			return
		}
		sg.deliver(suggestions, err)
	})
}

func (sg *Suggester) isClosed() bool {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	return sg.closed
}

// Close cancels pending work; no delivery happens afterwards. Safe to
// call more than once.
func (sg *Suggester) Close() {
	sg.mu.Lock()
	sg.closed = true
	sg.mu.Unlock()
	sg.debouncer.Stop()
}
