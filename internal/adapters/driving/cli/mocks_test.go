package cli

import (
	"context"
	"errors"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
)

type mockIngestService struct {
	pairs []domain.HistoricalPair
	err   error
}

func (m *mockIngestService) Ingest(_ context.Context, pairs []domain.HistoricalPair) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.pairs = append(m.pairs, pairs...)
	return len(pairs), nil
}

type mockRetriever struct {
	examples []domain.RetrievedExample
	err      error
	lastK    int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, k int) ([]domain.RetrievedExample, error) {
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.examples, nil
}

type mockReplyService struct {
	result *domain.PipelineResult
	err    error
	opts   driving.ProcessOptions
}

func (m *mockReplyService) Process(_ context.Context, emailText string, opts driving.ProcessOptions) (*domain.PipelineResult, error) {
	m.opts = opts
	if m.err != nil {
		return &domain.PipelineResult{OriginalEmail: emailText}, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	fields := domain.NewExtractedFields()
	fields.SenderName = "Sarah Chen"
	fields.SenderEmail = "sarah@budgetiq.io"
	fields.CompanyName = "BudgetIQ"
	return &domain.PipelineResult{
		OriginalEmail: emailText,
		Stage:         domain.StageComposed,
		Fields:        fields,
		Examples:      []domain.RetrievedExample{{Email: "e", Response: "r"}},
		Draft:         "the draft",
		FinalResponse: "the composed reply",
	}, nil
}

var errMockService = errors.New("mock service failure")
