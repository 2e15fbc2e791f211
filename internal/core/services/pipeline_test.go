package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
)

func testFields() domain.ExtractedFields {
	fields := domain.NewExtractedFields()
	fields.SenderName = "Sarah Chen"
	fields.SenderEmail = "sarah@budgetiq.io"
	fields.CompanyName = "BudgetIQ"
	return fields
}

func TestProcessHappyPath(t *testing.T) {
	researcher := &mockResearcher{brief: "the brief"}
	retriever := &mockRetriever{examples: []domain.RetrievedExample{{Email: "e", Response: "r"}}}
	drafter := &mockDrafter{draft: "the draft"}
	svc := NewPipelineService(
		&mockExtractor{fields: testFields()},
		retriever,
		drafter,
		&mockComposer{reply: "the final reply"},
		researcher,
	)

	result, err := svc.Process(context.Background(), "inbound email", driving.ProcessOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.StageComposed, result.Stage)
	assert.Equal(t, "inbound email", result.OriginalEmail)
	assert.Equal(t, "BudgetIQ", result.Fields.CompanyName)
	assert.Len(t, result.Examples, 1)
	assert.Equal(t, "the draft", result.Draft)
	assert.Equal(t, "the brief", result.Research)
	assert.Equal(t, "the final reply", result.FinalResponse)
	assert.Equal(t, 1, researcher.calls)

	// The drafter works from the examples the pipeline retrieved; one
	// embed and one index query per email.
	assert.Equal(t, 1, retriever.calls)
	assert.Equal(t, result.Examples, drafter.examples)
}

func TestProcessSkipResearch(t *testing.T) {
	researcher := &mockResearcher{brief: "the brief"}
	svc := NewPipelineService(
		&mockExtractor{fields: testFields()},
		&mockRetriever{},
		&mockDrafter{draft: "d"},
		&mockComposer{reply: "r"},
		researcher,
	)

	result, err := svc.Process(context.Background(), "email", driving.ProcessOptions{SkipResearch: true})

	require.NoError(t, err)
	assert.Empty(t, result.Research)
	assert.Equal(t, 0, researcher.calls)
}

func TestProcessNilResearcher(t *testing.T) {
	svc := NewPipelineService(
		&mockExtractor{fields: testFields()},
		&mockRetriever{},
		&mockDrafter{draft: "d"},
		&mockComposer{reply: "r"},
		nil,
	)

	result, err := svc.Process(context.Background(), "email", driving.ProcessOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.StageComposed, result.Stage)
}

func TestProcessExtractionFailure(t *testing.T) {
	extractErr := errors.New("provider down")
	svc := NewPipelineService(
		&mockExtractor{err: extractErr},
		&mockRetriever{},
		&mockDrafter{},
		&mockComposer{},
		nil,
	)

	result, err := svc.Process(context.Background(), "email", driving.ProcessOptions{})

	require.Error(t, err)
	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageExtracted, stageErr.Stage)
	assert.ErrorIs(t, err, extractErr)
	assert.Equal(t, domain.StageReceived, result.Stage)
}

func TestProcessDraftFailureKeepsEarlierStages(t *testing.T) {
	draftErr := errors.New("generation failed")
	svc := NewPipelineService(
		&mockExtractor{fields: testFields()},
		&mockRetriever{examples: []domain.RetrievedExample{{Email: "e", Response: "r"}}},
		&mockDrafter{err: draftErr},
		&mockComposer{reply: "unused"},
		&mockResearcher{brief: "still researched"},
	)

	result, err := svc.Process(context.Background(), "email", driving.ProcessOptions{})

	require.Error(t, err)
	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageDrafted, stageErr.Stage)

	// Prior completed stages remain inspectable for retry, including a
	// research brief that finished while drafting failed.
	assert.Equal(t, domain.StageRetrieved, result.Stage)
	assert.Equal(t, "BudgetIQ", result.Fields.CompanyName)
	assert.Len(t, result.Examples, 1)
	assert.Equal(t, "still researched", result.Research)
	assert.Empty(t, result.FinalResponse)
}

func TestProcessResearchFailureDegrades(t *testing.T) {
	// A failed research brief degrades the reply but never halts the
	// pipeline.
	svc := NewPipelineService(
		&mockExtractor{fields: testFields()},
		&mockRetriever{},
		&mockDrafter{draft: "d"},
		&mockComposer{reply: "composed without brief"},
		&mockResearcher{err: errors.New("search unreachable")},
	)

	result, err := svc.Process(context.Background(), "email", driving.ProcessOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Research)
	assert.Equal(t, "composed without brief", result.FinalResponse)
}

func TestProcessComposeFailure(t *testing.T) {
	composeErr := errors.New("model overloaded")
	svc := NewPipelineService(
		&mockExtractor{fields: testFields()},
		&mockRetriever{},
		&mockDrafter{draft: "the draft"},
		&mockComposer{err: composeErr},
		nil,
	)

	result, err := svc.Process(context.Background(), "email", driving.ProcessOptions{})

	require.Error(t, err)
	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageComposed, stageErr.Stage)
	assert.Equal(t, domain.StageDrafted, result.Stage)
	assert.Equal(t, "the draft", result.Draft)
}
