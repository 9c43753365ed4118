package cart

import (
	"sync"

	"shopfront/internal/domain"
)

// Listener is invoked synchronously after every dispatched operation
// with the cart that resulted from it. Listeners receive the same
// pointer the store now holds; a listener that saw the pointer before
// can conclude nothing changed.
type Listener func(*domain.Cart)

// Store is the state container for the cart aggregate. All mutation
// goes through the four engine operations; reads return the current
// immutable snapshot. Unlike the repositories in a multi-user backend
// there is exactly one cart per process.
type Store struct {
	mu        sync.RWMutex
	cart      *domain.Cart
	listeners []Listener
}

// NewStore creates a store seeded with the given cart, typically the
// record rehydrated from durable storage. A nil seed starts empty.
func NewStore(seed *domain.Cart) *Store {
	if seed == nil {
		seed = &domain.Cart{}
	}
	return &Store{cart: seed}
}

// Subscribe registers a listener for subsequent state changes.
// Listeners cannot be removed; registration happens once at wiring
// time.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Cart returns the current snapshot. Callers must not mutate it.
func (s *Store) Cart() *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

func (s *Store) Add(p domain.Product, quantity int) *domain.Cart {
	return s.dispatch(func(c *domain.Cart) *domain.Cart {
		return Add(c, p, quantity)
	})
}

func (s *Store) UpdateQuantity(id string, quantity int) *domain.Cart {
	return s.dispatch(func(c *domain.Cart) *domain.Cart {
		return UpdateQuantity(c, id, quantity)
	})
}

func (s *Store) Remove(id string) *domain.Cart {
	return s.dispatch(func(c *domain.Cart) *domain.Cart {
		return Remove(c, id)
	})
}

func (s *Store) Clear() *domain.Cart {
	return s.dispatch(Clear)
}

// dispatch applies one transition under the write lock and then
// notifies listeners outside it. Listeners fire on every dispatch,
// including no-ops; the reference check is theirs to make.
func (s *Store) dispatch(op func(*domain.Cart) *domain.Cart) *domain.Cart {
	s.mu.Lock()
	next := op(s.cart)
	s.cart = next
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}
