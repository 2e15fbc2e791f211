package driving

import (
	"context"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
)

// IngestService loads historical email/response pairs into the
// similarity index.
type IngestService interface {
	// Ingest embeds and indexes the pairs, persisting once per batch.
	// Returns the number of pairs ingested. An embedding failure on any
	// pair aborts the whole batch and reports the failing pair's index.
	Ingest(ctx context.Context, pairs []domain.HistoricalPair) (int, error)
}

// Retriever finds the historical pairs most similar to a new email.
type Retriever interface {
	// Retrieve returns up to k examples ordered nearest first. An empty
	// or uninitialised index yields an empty slice, never an error.
	Retrieve(ctx context.Context, queryEmail string, k int) ([]domain.RetrievedExample, error)
}

// Drafter produces a style-matched, intentionally incomplete draft from
// examples already retrieved for the email, so a retried draft never
// re-runs retrieval.
type Drafter interface {
	Draft(ctx context.Context, queryEmail string, fields domain.ExtractedFields, examples []domain.RetrievedExample) (string, error)
}

// Composer merges the style draft, extracted fields, and research brief
// into the final reply.
type Composer interface {
	Compose(ctx context.Context, fields domain.ExtractedFields, styleDraft, research string) (string, error)
}

// ReplyService runs the whole per-email pipeline:
// received → extracted → retrieved → drafted → composed.
type ReplyService interface {
	// Process runs every stage for one inbound email. On error the
	// returned result still carries the artifacts of completed stages,
	// and the error is a *domain.StageError naming the failed stage.
	Process(ctx context.Context, emailText string, opts ProcessOptions) (*domain.PipelineResult, error)
}

// ProcessOptions configures one pipeline run.
type ProcessOptions struct {
	// SkipResearch replaces the research stage with an empty brief.
	SkipResearch bool

	// Examples is the number of similar examples to retrieve (default 3).
	Examples int
}
