package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
)

type stubReply struct {
	result *domain.PipelineResult
	err    error
}

func (s *stubReply) Process(_ context.Context, emailText string, _ driving.ProcessOptions) (*domain.PipelineResult, error) {
	if s.err != nil {
		return &domain.PipelineResult{OriginalEmail: emailText}, s.err
	}
	return s.result, nil
}

type stubDeliverer struct {
	result domain.DeliveryResult
	sent   []domain.OutboundMessage
}

func (s *stubDeliverer) Send(_ context.Context, msg domain.OutboundMessage) domain.DeliveryResult {
	s.sent = append(s.sent, msg)
	return s.result
}

func sampleResult() *domain.PipelineResult {
	fields := domain.NewExtractedFields()
	fields.SenderName = "Sarah Chen"
	fields.SenderEmail = "sarah@budgetiq.io"
	fields.CompanyName = "BudgetIQ"
	return &domain.PipelineResult{
		OriginalEmail: "Subject: Seed round\n\nthe inquiry",
		Stage:         domain.StageComposed,
		Fields:        fields,
		Examples:      []domain.RetrievedExample{{Email: "e", Response: "r"}},
		Draft:         "the draft",
		FinalResponse: "the composed reply",
	}
}

func TestNewAppRequiresReplyService(t *testing.T) {
	_, err := NewApp(&Ports{})
	require.Error(t, err)
}

func TestPipelineDoneShowsReview(t *testing.T) {
	app, err := NewApp(&Ports{Reply: &stubReply{}})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	model, _ := app.Update(pipelineDoneMsg{result: sampleResult()})
	app = model.(*App)

	assert.Equal(t, screenReview, app.screen)
	view := app.View()
	assert.Contains(t, view, "the composed reply")
	assert.Contains(t, view, "BudgetIQ")
}

func TestPipelineErrorReturnsToInput(t *testing.T) {
	app, err := NewApp(&Ports{Reply: &stubReply{}})
	require.NoError(t, err)
	app.screen = screenProcessing
	app.working = true

	model, _ := app.Update(pipelineDoneMsg{err: errors.New("provider down")})
	app = model.(*App)

	assert.Equal(t, screenInput, app.screen)
	assert.Contains(t, app.View(), "provider down")
}

func TestSendKeyDeliversReply(t *testing.T) {
	deliverer := &stubDeliverer{result: domain.DeliveryResult{Status: domain.DeliverySent}}
	app, err := NewApp(&Ports{
		Reply:     &stubReply{},
		Deliverer: deliverer,
		Subject: func(emailText string) string {
			return "Re: Seed round"
		},
	})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model, _ := app.Update(pipelineDoneMsg{result: sampleResult()})
	app = model.(*App)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app = model.(*App)
	require.NotNil(t, cmd)

	// Drain the batched commands until the delivery message appears.
	msg := collectMsg(t, cmd)
	model, _ = app.Update(msg)
	app = model.(*App)

	require.Len(t, deliverer.sent, 1)
	assert.Equal(t, "sarah@budgetiq.io", deliverer.sent[0].To)
	assert.Equal(t, "Re: Seed round", deliverer.sent[0].Subject)
	assert.Equal(t, "the composed reply", deliverer.sent[0].Body)
	assert.Contains(t, app.View(), "Sent to sarah@budgetiq.io")
}

func TestSendDisabledWithoutDeliverer(t *testing.T) {
	app, err := NewApp(&Ports{Reply: &stubReply{}})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model, _ := app.Update(pipelineDoneMsg{result: sampleResult()})
	app = model.(*App)

	assert.NotContains(t, app.View(), "ctrl+s send")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app = model.(*App)
	assert.Nil(t, app.sent)
}

func TestEscReturnsToInput(t *testing.T) {
	app, err := NewApp(&Ports{Reply: &stubReply{}})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model, _ := app.Update(pipelineDoneMsg{result: sampleResult()})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)

	assert.Equal(t, screenInput, app.screen)
}

// collectMsg runs a command tree until it yields the delivery outcome.
func collectMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if done, ok := msg.(deliveryDoneMsg); ok {
			return done
		}
	}
	t.Fatal("no delivery message produced")
	return nil
}

func TestReviewContentSkipsAbsentFields(t *testing.T) {
	app, err := NewApp(&Ports{Reply: &stubReply{}})
	require.NoError(t, err)
	app.result = sampleResult()

	content := app.reviewContent()

	assert.Contains(t, content, "sender_name: Sarah Chen")
	assert.False(t, strings.Contains(content, "funding_stage"), "absent fields should be hidden")
}
