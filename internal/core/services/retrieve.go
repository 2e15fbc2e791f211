package services

import (
	"context"
	"fmt"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// DefaultExampleCount is the number of similar examples retrieved when
// the caller does not ask for a specific k.
const DefaultExampleCount = 3

// RetrieverService finds the historical pairs most similar to a new
// inbound email and reconstructs them into readable examples.
type RetrieverService struct {
	embedder driven.EmbeddingService
	index    driven.SimilarityIndex
}

// NewRetrieverService creates a retriever bound to an embedder and an index.
func NewRetrieverService(embedder driven.EmbeddingService, index driven.SimilarityIndex) *RetrieverService {
	return &RetrieverService{embedder: embedder, index: index}
}

// Retrieve embeds the query email alone (the response side is exactly
// what is unknown at query time) and returns up to k examples ordered
// nearest first. "No exemplars" is a normal state: an empty index yields
// an empty slice, never an error.
func (s *RetrieverService) Retrieve(ctx context.Context, queryEmail string, k int) ([]domain.RetrievedExample, error) {
	if k <= 0 {
		k = DefaultExampleCount
	}

	logger.Stage("Similar-Example Retrieval")

	if s.index.Len() == 0 {
		logger.Debug("index is empty, no exemplars")
		return []domain.RetrievedExample{}, nil
	}

	vector, err := s.embedder.Embed(ctx, queryEmail)
	if err != nil {
		return nil, fmt.Errorf("embedding query email: %w", err)
	}

	hits, err := s.index.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	examples := make([]domain.RetrievedExample, 0, len(hits))
	for _, hit := range hits {
		email, response, ok := domain.SplitJointRepresentation(hit.Record.Payload)
		if !ok {
			// Malformed legacy records must not crash retrieval.
			logger.Warn("skipping malformed record %s: missing joint separator", hit.Record.ID)
			continue
		}
		examples = append(examples, domain.RetrievedExample{
			Email:    email,
			Response: response,
			Metadata: hit.Record.Metadata,
			Distance: hit.Distance,
		})
	}

	logger.Debug("retrieved %d examples (k=%d)", len(examples), k)
	return examples, nil
}
