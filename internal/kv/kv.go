// Package kv provides the durable key-value store the storefront keeps
// its cart and product-detail cache in. Backends implement raw byte
// storage with errors; the Adapter on top owns JSON encoding and the
// best-effort contract: storage failures are logged and swallowed,
// never surfaced to callers.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

var ErrNotFound = errors.New("key not found")

// Backend is the raw storage capability. Consumers define this
// interface, not the individual backends.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Adapter wraps a Backend with JSON (de)serialization and never-raise
// semantics. A corrupt stored record is indistinguishable from an
// absent one to callers; the parse failure is logged.
type Adapter struct {
	backend Backend
	log     *slog.Logger
}

func NewAdapter(backend Backend, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{backend: backend, log: log}
}

// Load reads key and unmarshals it into v. Returns false when the key
// is absent, unreadable or corrupt.
func (a *Adapter) Load(ctx context.Context, key string, v any) bool {
	data, err := a.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		a.log.Warn("kv: load failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		a.log.Warn("kv: corrupt record", "key", key, "error", err)
		return false
	}
	return true
}

// Save marshals v and writes it under key, overwriting any prior
// value. Failures are logged and dropped.
func (a *Adapter) Save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		a.log.Warn("kv: marshal failed", "key", key, "error", err)
		return
	}
	if err := a.backend.Set(ctx, key, data); err != nil {
		a.log.Warn("kv: save failed", "key", key, "error", err)
	}
}

// Remove deletes key. Removing an absent key is not an error.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.backend.Delete(ctx, key); err != nil {
		a.log.Warn("kv: remove failed", "key", key, "error", err)
	}
}

func (a *Adapter) Close() error {
	return a.backend.Close()
}
