// Package memory provides a volatile in-memory similarity index with
// brute-force cosine-distance search. It shares its semantics with the
// sqlite index and backs tests and cold-start runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lucerne-labs/fundreply/internal/adapters/driven/index"
	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SimilarityIndex = (*Index)(nil)

// Index is an in-memory similarity index. The first upsert establishes
// the dimensionality for the index's lifetime.
type Index struct {
	mu        sync.RWMutex
	dimension int
	records   []domain.IndexedRecord
	byID      map[string]int
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{byID: make(map[string]int)}
}

// Upsert inserts a record, replacing any record with the same ID.
func (x *Index) Upsert(_ context.Context, rec domain.IndexedRecord) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.dimension == 0 {
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("%w: record %s has empty embedding", domain.ErrDimensionMismatch, rec.ID)
		}
		x.dimension = len(rec.Embedding)
	}
	if len(rec.Embedding) != x.dimension {
		return fmt.Errorf("%w: record %s has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, rec.ID, len(rec.Embedding), x.dimension)
	}

	if pos, ok := x.byID[rec.ID]; ok {
		x.records[pos] = rec
		return nil
	}
	x.byID[rec.ID] = len(x.records)
	x.records = append(x.records, rec)
	return nil
}

// Query returns up to k records ordered by ascending cosine distance.
func (x *Index) Query(_ context.Context, vector []float32, k int) ([]driven.IndexHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.dimension != 0 && len(vector) != x.dimension {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(vector), x.dimension)
	}

	hits := make([]driven.IndexHit, 0, len(x.records))
	for _, rec := range x.records {
		hits = append(hits, driven.IndexHit{
			Record:   rec,
			Distance: index.CosineDistance(vector, rec.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Persist is a no-op: the memory index has no durable storage.
func (x *Index) Persist(_ context.Context) error {
	return nil
}

// Len reports the number of records currently indexed.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records)
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}
