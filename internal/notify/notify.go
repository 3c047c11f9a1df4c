// Package notify delivers invalidation signals after successful mutations.
//
// An Invalidation names the query keys whose data is stale. Keys are string
// slices such as ["categories", "list"] or ["transactions", "account", id].
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

type Invalidation struct {
	Keys [][]string `json:"keys"`
}

// Notifier receives invalidations.
type Notifier interface {
	Notify(ctx context.Context, inv Invalidation) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, inv Invalidation) error

func (f NotifierFunc) Notify(ctx context.Context, inv Invalidation) error {
	return f(ctx, inv)
}

// Multi notifies all of its notifiers. Every notifier is called even if
// an earlier one fails.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, inv Invalidation) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, inv); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	mu        sync.RWMutex
	notifiers = Multi{}
)

// Register adds a notifier that Emit delivers to.
func Register(n Notifier) {
	mu.Lock()
	defer mu.Unlock()
	notifiers = append(notifiers, n)
}

// Reset removes all registered notifiers.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	notifiers = Multi{}
}

// Emit sends an invalidation for the keys to all registered notifiers.
// Delivery failures are logged, a mutation that reached the store is
// never reported as failed because of them.
func Emit(ctx context.Context, keys ...[]string) {
	if len(keys) == 0 {
		return
	}

	mu.RLock()
	n := notifiers
	mu.RUnlock()

	if err := n.Notify(ctx, Invalidation{Keys: keys}); err != nil {
		log.Warn().Err(err).Interface("keys", keys).Msg("invalidation delivery failed")
	}
}
