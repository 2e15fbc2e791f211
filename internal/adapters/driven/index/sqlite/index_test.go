package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
)

func newTestIndex(t *testing.T, dir string) *Index {
	t.Helper()
	x, err := NewIndex(dir)
	require.NoError(t, err)
	t.Cleanup(func() { x.Close() })
	return x
}

func TestNewIndexFreshDirectory(t *testing.T) {
	// Absence of storage is not an error: it signals "build fresh".
	x := newTestIndex(t, t.TempDir())
	assert.Equal(t, 0, x.Len())
}

func TestPersistLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	rec := domain.IndexedRecord{
		ID:        "pair-0",
		Embedding: []float32{0.25, -1.5, 3},
		Payload:   "EMAIL: hello\n\nRESPONSE: hi there",
		Metadata:  map[string]string{"industry": "Fintech", "funding_stage": "Seed"},
	}

	x := newTestIndex(t, dir)
	require.NoError(t, x.Upsert(ctx, rec))
	require.NoError(t, x.Upsert(ctx, domain.IndexedRecord{
		ID:        "pair-1",
		Embedding: []float32{-1, 0.5, 0},
		Payload:   "EMAIL: other\n\nRESPONSE: reply",
	}))
	require.NoError(t, x.Persist(ctx))

	before, err := x.Query(ctx, []float32{0.25, -1.5, 3}, 2)
	require.NoError(t, err)
	require.NoError(t, x.Close())

	// Reopen and expect identical query behaviour.
	reopened := newTestIndex(t, dir)
	assert.Equal(t, 2, reopened.Len())

	after, err := reopened.Query(ctx, []float32{0.25, -1.5, 3}, 2)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Record.ID, after[i].Record.ID)
		assert.InDelta(t, before[i].Distance, after[i].Distance, 1e-9)
		assert.Equal(t, before[i].Record.Payload, after[i].Record.Payload)
		assert.Equal(t, before[i].Record.Embedding, after[i].Record.Embedding)
		assert.Equal(t, before[i].Record.Metadata, after[i].Record.Metadata)
	}
}

func TestUnpersistedRecordsNotDurable(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	x := newTestIndex(t, dir)
	require.NoError(t, x.Upsert(ctx, domain.IndexedRecord{
		ID:        "persisted",
		Embedding: []float32{1, 0},
		Payload:   "EMAIL: a\n\nRESPONSE: b",
	}))
	require.NoError(t, x.Persist(ctx))

	require.NoError(t, x.Upsert(ctx, domain.IndexedRecord{
		ID:        "staged-only",
		Embedding: []float32{0, 1},
		Payload:   "EMAIL: c\n\nRESPONSE: d",
	}))
	require.NoError(t, x.Close())

	// The last completed flush is the recovery point.
	reopened := newTestIndex(t, dir)
	assert.Equal(t, 1, reopened.Len())
}

func TestUpsertDimensionMismatch(t *testing.T) {
	x := newTestIndex(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, x.Upsert(ctx, domain.IndexedRecord{
		ID:        "a",
		Embedding: []float32{1, 2, 3},
		Payload:   "EMAIL: a\n\nRESPONSE: b",
	}))

	err := x.Upsert(ctx, domain.IndexedRecord{
		ID:        "b",
		Embedding: []float32{1, 2},
		Payload:   "EMAIL: c\n\nRESPONSE: d",
	})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestUpsertIdempotentOnID(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	x := newTestIndex(t, dir)
	require.NoError(t, x.Upsert(ctx, domain.IndexedRecord{
		ID:        "pair-0",
		Embedding: []float32{1, 0},
		Payload:   "EMAIL: old\n\nRESPONSE: old reply",
	}))
	require.NoError(t, x.Persist(ctx))

	require.NoError(t, x.Upsert(ctx, domain.IndexedRecord{
		ID:        "pair-0",
		Embedding: []float32{0, 1},
		Payload:   "EMAIL: new\n\nRESPONSE: new reply",
	}))
	require.NoError(t, x.Persist(ctx))
	require.NoError(t, x.Close())

	reopened := newTestIndex(t, dir)
	require.Equal(t, 1, reopened.Len())

	hits, err := reopened.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "EMAIL: new\n\nRESPONSE: new reply", hits[0].Record.Payload)
}

func TestPersistNothingStaged(t *testing.T) {
	x := newTestIndex(t, t.TempDir())
	assert.NoError(t, x.Persist(context.Background()))
}

func TestQueryInvalidK(t *testing.T) {
	x := newTestIndex(t, t.TempDir())

	_, err := x.Query(context.Background(), []float32{1}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryDimensionMismatch(t *testing.T) {
	x := newTestIndex(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, x.Upsert(ctx, domain.IndexedRecord{
		ID:        "a",
		Embedding: []float32{1, 2, 3},
		Payload:   "EMAIL: a\n\nRESPONSE: b",
	}))

	_, err := x.Query(ctx, []float32{1, 2}, 3)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}
