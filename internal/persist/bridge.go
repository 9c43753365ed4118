// Package persist mirrors the in-memory cart into the durable store.
package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shopfront/internal/cart"
	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

// CartKey is the namespaced, versioned storage key for the persisted
// cart record. Bump the version to orphan records from incompatible
// deployments.
const CartKey = "shopfront_v1:cart"

const writeTimeout = time.Second

// Bridge is a cart.Store listener that keeps a durable mirror of the
// cart: present and current while the cart is non-empty, absent once
// it empties. Writes are best-effort; a failed write is a warning, not
// an error, and in-memory state is never affected.
type Bridge struct {
	store *kv.Adapter
	log   *slog.Logger

	mu   sync.Mutex
	last *domain.Cart
}

func NewBridge(store *kv.Adapter, log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{store: store, log: log}
}

// Attach registers the bridge against the cart store. The cart as of
// attach time is taken as already mirrored; only subsequent changes
// are written.
func (b *Bridge) Attach(s *cart.Store) {
	b.mu.Lock()
	b.last = s.Cart()
	b.mu.Unlock()
	s.Subscribe(b.observe)
}

func (b *Bridge) observe(next *domain.Cart) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Same reference means the dispatched operation was a no-op.
	if next == b.last {
		return
	}
	b.last = next

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if next.IsEmpty() {
		b.store.Remove(ctx, CartKey)
		return
	}
	b.store.Save(ctx, CartKey, next)
}

// Rehydrate loads the persisted cart record, or an empty cart when the
// record is absent or unreadable.
func Rehydrate(ctx context.Context, store *kv.Adapter) *domain.Cart {
	var c domain.Cart
	if !store.Load(ctx, CartKey, &c) {
		return &domain.Cart{}
	}
	return &c
}
