package driven

import "context"

// EmbeddingService turns text into fixed-length vectors for distance
// comparison. Implementations must be deterministic for identical input
// within one index's lifetime: mixing providers (or models) within an
// index corrupts distance comparisons.
//
// Note: this is separate from SimilarityIndex, which stores and searches
// vectors. EmbeddingService generates them.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	// Results are returned in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 1536).
	// This must match the similarity index configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
