package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestAdapter_LoadMissingKey(t *testing.T) {
	a := NewAdapter(NewMemoryBackend(), nil)

	var out record
	assert.False(t, a.Load(context.Background(), "absent", &out))
}

func TestAdapter_SaveAndLoad(t *testing.T) {
	a := NewAdapter(NewMemoryBackend(), nil)
	ctx := context.Background()

	a.Save(ctx, "rec", record{Name: "shirt", Count: 3})

	var out record
	require.True(t, a.Load(ctx, "rec", &out))
	assert.Equal(t, record{Name: "shirt", Count: 3}, out)
}

func TestAdapter_CorruptRecordReadsAsAbsent(t *testing.T) {
	backend := NewMemoryBackend()
	a := NewAdapter(backend, nil)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "rec", []byte("{not json")))

	var out record
	assert.False(t, a.Load(ctx, "rec", &out))
}

func TestAdapter_Remove(t *testing.T) {
	backend := NewMemoryBackend()
	a := NewAdapter(backend, nil)
	ctx := context.Background()

	a.Save(ctx, "rec", record{Name: "shirt"})
	a.Remove(ctx, "rec")

	var out record
	assert.False(t, a.Load(ctx, "rec", &out))

	// Removing an absent key must not log or fail.
	a.Remove(ctx, "rec")
	assert.Equal(t, 0, backend.Len())
}
