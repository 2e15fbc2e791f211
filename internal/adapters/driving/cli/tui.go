package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lucerne-labs/fundreply/internal/adapters/driven/delivery/smtp"
	"github.com/lucerne-labs/fundreply/internal/adapters/driving/tui"
)

var tuiDryRun bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for drafting replies.

Paste an inbound inquiry, watch the pipeline run, review the composed
reply, and send it without leaving the terminal.

Controls:
  ctrl+r - Run the pipeline on the pasted email
  ctrl+s - Send the composed reply
  Esc    - Back to input
  q      - Quit from the review screen`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiDryRun, "dry-run", false, "simulate sends instead of delivering")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	svc, err := ensureReply()
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		Reply:   svc,
		Subject: subjectFor,
	}

	// Sending is offered only when SMTP is configured; a dry run needs
	// no credentials.
	if tuiDryRun || (settings.Email.SMTPServer != "" && settings.Email.Username != "" && settings.Email.Password != "") {
		sender, err := newDeliverer(smtp.Config{
			Host:     settings.Email.SMTPServer,
			Port:     settings.Email.SMTPPort,
			Username: settings.Email.Username,
			Password: settings.Email.Password,
			From:     settings.Email.DefaultSender,
			DryRun:   tuiDryRun,
		})
		if err != nil {
			return fmt.Errorf("configure delivery: %w", err)
		}
		ports.Deliverer = sender
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
