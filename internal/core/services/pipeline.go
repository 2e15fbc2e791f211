package services

import (
	"context"
	"sync"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.ReplyService = (*PipelineService)(nil)

// PipelineService sequences the per-email pipeline:
// received → extracted → retrieved → drafted → composed.
// Each inbound email is processed by one strictly sequential pipeline,
// except that drafting and research both depend only on earlier stage
// outputs and run concurrently.
type PipelineService struct {
	extractor  driven.FieldExtractor
	retriever  driving.Retriever
	drafter    driving.Drafter
	composer   driving.Composer
	researcher driven.Researcher
}

// NewPipelineService wires the pipeline stages together.
// researcher may be nil, in which case the research stage is skipped.
func NewPipelineService(
	extractor driven.FieldExtractor,
	retriever driving.Retriever,
	drafter driving.Drafter,
	composer driving.Composer,
	researcher driven.Researcher,
) *PipelineService {
	return &PipelineService{
		extractor:  extractor,
		retriever:  retriever,
		drafter:    drafter,
		composer:   composer,
		researcher: researcher,
	}
}

// Process runs every stage for one inbound email. On failure the result
// still carries everything produced by completed stages, and the error
// is a *domain.StageError naming the failed stage so the caller can
// retry just that stage.
func (s *PipelineService) Process(ctx context.Context, emailText string, opts driving.ProcessOptions) (*domain.PipelineResult, error) {
	result := &domain.PipelineResult{
		OriginalEmail: emailText,
		Stage:         domain.StageReceived,
	}

	fields, err := s.extractor.Extract(ctx, emailText)
	if err != nil {
		return result, &domain.StageError{Stage: domain.StageExtracted, Err: err}
	}
	result.Fields = fields
	result.Stage = domain.StageExtracted

	k := opts.Examples
	if k <= 0 {
		k = DefaultExampleCount
	}
	examples, err := s.retriever.Retrieve(ctx, emailText, k)
	if err != nil {
		return result, &domain.StageError{Stage: domain.StageRetrieved, Err: err}
	}
	result.Examples = examples
	result.Stage = domain.StageRetrieved

	// Drafting and research share no state beyond read-only stage
	// outputs, so they run on separate goroutines and join before
	// composition.
	var (
		wg          sync.WaitGroup
		draft       string
		draftErr    error
		research    string
		researchErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		draft, draftErr = s.drafter.Draft(ctx, emailText, fields, examples)
	}()

	if s.researcher != nil && !opts.SkipResearch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Stage("Company Research")
			research, researchErr = s.researcher.Research(ctx, fields)
		}()
	}

	wg.Wait()

	if researchErr != nil {
		// Research is a collaborator, not a core stage: a failed brief
		// degrades the reply but does not halt the pipeline.
		logger.Warn("research failed, composing without brief: %v", researchErr)
		research = ""
	}
	// Recorded before the draft error check so a completed brief stays
	// inspectable even when drafting fails.
	result.Research = research

	if draftErr != nil {
		return result, &domain.StageError{Stage: domain.StageDrafted, Err: draftErr}
	}
	result.Draft = draft
	result.Stage = domain.StageDrafted

	reply, err := s.composer.Compose(ctx, fields, draft, research)
	if err != nil {
		return result, &domain.StageError{Stage: domain.StageComposed, Err: err}
	}
	result.FinalResponse = reply
	result.Stage = domain.StageComposed

	return result, nil
}
