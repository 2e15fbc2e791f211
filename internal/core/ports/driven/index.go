package driven

import (
	"context"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
)

// IndexHit is one nearest-neighbour result.
type IndexHit struct {
	Record domain.IndexedRecord

	// Distance is the cosine distance to the query vector.
	// Results are ordered by non-decreasing distance.
	Distance float64
}

// SimilarityIndex stores (vector, payload) records and answers
// k-nearest-neighbour queries.
//
// Concurrency contract: Upsert and Persist serialise against each other
// and against Query (writer lock); concurrent Query calls may run
// unsynchronised against a stable snapshot. Steady-state pipelines only
// call Query; ingestion is an effectively offline operation.
type SimilarityIndex interface {
	// Upsert inserts a record, replacing any existing record with the
	// same ID. Returns domain.ErrDimensionMismatch when the embedding
	// length disagrees with the index's established dimensionality.
	Upsert(ctx context.Context, record domain.IndexedRecord) error

	// Query returns up to k records ordered by ascending distance.
	// An empty index yields an empty result, never an error.
	// k <= 0 is a caller error (domain.ErrInvalidInput).
	Query(ctx context.Context, vector []float32, k int) ([]IndexHit, error)

	// Persist durably flushes all records to storage. The last completed
	// flush is the recovery point after a crash.
	Persist(ctx context.Context) error

	// Len reports the number of records currently indexed.
	Len() int

	// Close releases resources.
	Close() error
}
