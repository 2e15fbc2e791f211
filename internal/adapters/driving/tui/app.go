// Package tui is the interactive terminal front-end for reviewing and
// sending drafted replies. It follows the Elm architecture via Bubbletea:
// paste an inquiry, watch the pipeline stages run, review the composed
// reply, then send it or leave it as a draft.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
)

// Ports are the core services the TUI drives. Reply is required;
// Deliverer may be nil, which disables sending.
type Ports struct {
	Reply     driving.ReplyService
	Deliverer driven.Deliverer

	// Subject derives the outbound subject from the inquiry text.
	Subject func(emailText string) string
}

// Validate checks that required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Reply == nil {
		return fmt.Errorf("reply service is required")
	}
	return nil
}

// screen identifies which view is active.
type screen int

const (
	screenInput screen = iota
	screenProcessing
	screenReview
)

// pipelineDoneMsg carries the pipeline outcome back into Update.
type pipelineDoneMsg struct {
	result *domain.PipelineResult
	err    error
}

// deliveryDoneMsg carries the send outcome back into Update.
type deliveryDoneMsg struct {
	result domain.DeliveryResult
}

// App is the TUI model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	screen  screen
	input   textarea.Model
	spin    spinner.Model
	view    viewport.Model
	result  *domain.PipelineResult
	sent    *domain.DeliveryResult
	err     error
	width   int
	height  int
	working bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates the TUI application.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textarea.New()
	input.Placeholder = "Paste the inbound inquiry email here..."
	input.Focus()
	input.CharLimit = 0

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: DefaultStyles(),
		screen: screenInput,
		input:  input,
		spin:   spin,
		view:   viewport.New(80, 20),
	}, nil
}

// WithContext sets the context used for pipeline and delivery calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		tea.SetWindowTitle("fundreply"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.SetWidth(msg.Width - 4)
		a.input.SetHeight(msg.Height - 8)
		a.view.Width = msg.Width - 4
		a.view.Height = msg.Height - 6
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case pipelineDoneMsg:
		a.working = false
		if msg.err != nil {
			a.err = msg.err
			a.screen = screenInput
			return a, nil
		}
		a.result = msg.result
		a.sent = nil
		a.err = nil
		a.screen = screenReview
		a.view.SetContent(a.reviewContent())
		a.view.GotoTop()
		return a, nil

	case deliveryDoneMsg:
		a.working = false
		a.sent = &msg.result
		a.view.SetContent(a.reviewContent())
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	return a.updateChildren(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "ctrl+r":
		if a.screen == screenInput && strings.TrimSpace(a.input.Value()) != "" {
			return a.startPipeline()
		}

	case "ctrl+s":
		if a.screen == screenReview && a.ports.Deliverer != nil && !a.working && a.sent == nil {
			return a.startDelivery()
		}

	case "esc":
		if a.screen == screenReview {
			a.screen = screenInput
			a.input.Focus()
			return a, textarea.Blink
		}

	case "q":
		if a.screen == screenReview {
			return a, tea.Quit
		}
	}

	return a.updateChildren(msg)
}

func (a *App) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch a.screen {
	case screenInput:
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)
	case screenReview:
		a.view, cmd = a.view.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) startPipeline() (tea.Model, tea.Cmd) {
	emailText := strings.TrimSpace(a.input.Value())
	a.screen = screenProcessing
	a.working = true
	a.err = nil

	run := func() tea.Msg {
		result, err := a.ports.Reply.Process(a.ctx, emailText, driving.ProcessOptions{})
		return pipelineDoneMsg{result: result, err: err}
	}
	return a, tea.Batch(a.spin.Tick, run)
}

func (a *App) startDelivery() (tea.Model, tea.Cmd) {
	a.working = true
	result := a.result
	emailText := result.OriginalEmail

	subject := "Re: Your recent inquiry"
	if a.ports.Subject != nil {
		subject = a.ports.Subject(emailText)
	}

	run := func() tea.Msg {
		return deliveryDoneMsg{result: a.ports.Deliverer.Send(a.ctx, domain.OutboundMessage{
			To:      result.Fields.SenderEmail,
			Subject: subject,
			Body:    result.FinalResponse,
		})}
	}
	return a, tea.Batch(a.spin.Tick, run)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("fundreply"))
	b.WriteString("\n\n")

	switch a.screen {
	case screenInput:
		if a.err != nil {
			b.WriteString(a.styles.Error.Render("Error: "+a.err.Error()) + "\n\n")
		}
		b.WriteString(a.input.View())
		b.WriteString("\n" + a.styles.HelpLine.Render("ctrl+r run pipeline • ctrl+c quit"))

	case screenProcessing:
		b.WriteString(a.spin.View() + " Drafting reply...")
		b.WriteString("\n\n" + a.styles.Subtle.Render("extracting fields, retrieving similar exchanges, composing"))

	case screenReview:
		b.WriteString(a.view.View())
		help := "esc new inquiry • q quit"
		if a.ports.Deliverer != nil && a.sent == nil {
			help = "ctrl+s send • " + help
		}
		b.WriteString("\n" + a.styles.HelpLine.Render(help))
	}

	return b.String()
}

// reviewContent renders the pipeline artifacts for the review screen.
func (a *App) reviewContent() string {
	if a.result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.styles.Label.Render("Extracted fields") + "\n")
	for _, f := range a.result.Fields.Ordered() {
		if domain.Mentioned(f.Value) {
			b.WriteString(fmt.Sprintf("  %s: %s\n", f.Name, f.Value))
		}
	}

	b.WriteString("\n" + a.styles.Label.Render(fmt.Sprintf("Similar exchanges used: %d", len(a.result.Examples))) + "\n")

	if a.result.Research != "" {
		b.WriteString("\n" + a.styles.Label.Render("Research brief") + "\n")
		b.WriteString(a.result.Research + "\n")
	}

	b.WriteString("\n" + a.styles.Label.Render("Composed reply") + "\n")
	b.WriteString(a.styles.Panel.Render(a.result.FinalResponse) + "\n")

	if a.sent != nil {
		switch a.sent.Status {
		case domain.DeliverySent:
			b.WriteString("\n" + a.styles.Success.Render("Sent to "+a.result.Fields.SenderEmail) + "\n")
		case domain.DeliverySimulated:
			b.WriteString("\n" + a.styles.Subtle.Render("Dry run: reply was not sent.") + "\n")
		default:
			b.WriteString("\n" + a.styles.Error.Render("Delivery failed: "+a.sent.Reason) + "\n")
		}
	}

	return b.String()
}
