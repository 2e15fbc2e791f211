package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService bulk-loads historical email/response pairs into the
// similarity index.
type IngestService struct {
	embedder driven.EmbeddingService
	index    driven.SimilarityIndex

	// idFor derives the record id for a pair. Swappable in tests; the
	// default hashes the pair's content, so re-ingesting the same corpus
	// replaces records while distinct pairs never collide.
	idFor func(pair domain.HistoricalPair) string
}

// NewIngestService creates an ingestor bound to an embedder and an index.
func NewIngestService(embedder driven.EmbeddingService, index driven.SimilarityIndex) *IngestService {
	return &IngestService{
		embedder: embedder,
		index:    index,
		idFor:    defaultRecordID,
	}
}

// defaultRecordID derives the record id from the pair's content.
// A pair carrying an explicit "id" label keeps it, allowing in-place
// updates of a known record. Otherwise the id is a hash of the joint
// representation: re-ingesting the same pair replaces its record, while
// pairs from different corpora can never alias each other.
func defaultRecordID(pair domain.HistoricalPair) string {
	if id, ok := pair.Metadata["id"]; ok && id != "" {
		return id
	}
	sum := sha256.Sum256([]byte(pair.JointRepresentation()))
	return "pair-" + hex.EncodeToString(sum[:8])
}

// Ingest validates, embeds, and indexes the pairs, then persists the
// index exactly once. Any failure aborts the whole batch: a partial
// corpus silently missing exemplars is worse than a clear halt.
func (s *IngestService) Ingest(ctx context.Context, pairs []domain.HistoricalPair) (int, error) {
	if len(pairs) == 0 {
		return 0, fmt.Errorf("%w: no pairs to ingest", domain.ErrEmptyCorpus)
	}

	logger.Stage("Corpus Ingestion")
	logger.Debug("ingesting %d pairs with model %s", len(pairs), s.embedder.ModelName())

	joints := make([]string, len(pairs))
	for i, pair := range pairs {
		if err := pair.Validate(); err != nil {
			return 0, fmt.Errorf("pair %d: %w", i, err)
		}
		joints[i] = pair.JointRepresentation()
	}

	vectors, err := s.embedder.EmbedBatch(ctx, joints)
	if err != nil {
		// Batch embedding gives no per-pair failure; fall back to
		// one-by-one so the report names the offending pair.
		return 0, s.embedOneByOne(ctx, joints, err)
	}
	if len(vectors) != len(pairs) {
		return 0, fmt.Errorf("embedding provider returned %d vectors for %d pairs", len(vectors), len(pairs))
	}

	for i, pair := range pairs {
		rec := domain.IndexedRecord{
			ID:        s.idFor(pair),
			Embedding: vectors[i],
			Payload:   joints[i],
			Metadata:  pair.Metadata,
		}
		if err := s.index.Upsert(ctx, rec); err != nil {
			return 0, fmt.Errorf("indexing pair %d: %w", i, err)
		}
	}

	// One durable flush per batch, not per record.
	if err := s.index.Persist(ctx); err != nil {
		return 0, fmt.Errorf("persisting index: %w", err)
	}

	logger.Info("ingested %d pairs, index now holds %d records", len(pairs), s.index.Len())
	return len(pairs), nil
}

// embedOneByOne retries each joint text individually to find which pair
// the batch failed on, then reports it. The original batch error is used
// when every individual call unexpectedly succeeds.
func (s *IngestService) embedOneByOne(ctx context.Context, joints []string, batchErr error) error {
	for i, joint := range joints {
		if _, err := s.embedder.Embed(ctx, joint); err != nil {
			return fmt.Errorf("embedding pair %d: %w", i, err)
		}
	}
	return fmt.Errorf("embedding batch: %w", batchErr)
}
