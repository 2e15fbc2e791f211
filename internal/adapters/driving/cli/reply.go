package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lucerne-labs/fundreply/internal/adapters/driven/auditlog/sheets"
	"github.com/lucerne-labs/fundreply/internal/adapters/driven/delivery/smtp"
	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

var (
	replySend       bool
	replyDryRun     bool
	replyNoResearch bool
	replyJSON       bool
	replyCount      int
	replySubject    string
)

// Swappable for tests.
var (
	newDeliverer = func(cfg smtp.Config) (driven.Deliverer, error) {
		return smtp.NewSender(cfg)
	}
	newAuditLog = func(ctx context.Context, cfg sheets.Config) (driven.InteractionLog, error) {
		return sheets.NewLogger(ctx, cfg)
	}
)

var replyCmd = &cobra.Command{
	Use:   "reply [email-file]",
	Short: "Draft a reply to an inbound investment inquiry",
	Long: `Runs the full drafting pipeline for one inbound email: extracts
the inquiry fields, retrieves the most similar past exchanges, drafts a
style-matched reply, researches the sender's company, and composes the
final response.

Reads the email from the named file, or from stdin when the argument is
omitted or "-". The reply is printed for review; nothing is sent unless
--send or --dry-run is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReply,
}

func init() {
	replyCmd.Flags().BoolVar(&replySend, "send", false, "send the composed reply over SMTP")
	replyCmd.Flags().BoolVar(&replyDryRun, "dry-run", false, "simulate the send instead of delivering")
	replyCmd.Flags().BoolVar(&replyNoResearch, "no-research", false, "skip the company research stage")
	replyCmd.Flags().BoolVar(&replyJSON, "json", false, "output the pipeline result as JSON")
	replyCmd.Flags().IntVarP(&replyCount, "count", "n", 3, "number of similar examples to retrieve")
	replyCmd.Flags().StringVar(&replySubject, "subject", "", "reply subject (default derived from the inquiry)")
	replyCmd.MarkFlagsMutuallyExclusive("send", "dry-run")
	rootCmd.AddCommand(replyCmd)
}

func runReply(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	emailText, err := readEmailText(path)
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	if emailText == "" {
		return fmt.Errorf("email text is empty: %w", domain.ErrInvalidInput)
	}

	svc, err := ensureReply()
	if err != nil {
		return err
	}

	result, err := svc.Process(cmd.Context(), emailText, driving.ProcessOptions{
		SkipResearch: replyNoResearch,
		Examples:     replyCount,
	})
	if err != nil {
		return fmt.Errorf("pipeline failed at stage %s: %w", result.Stage, err)
	}

	var delivery *domain.DeliveryResult
	if replySend || replyDryRun {
		r, err := deliverReply(cmd, emailText, result)
		if err != nil {
			return err
		}
		delivery = &r
	}

	recordInteraction(cmd.Context(), result, delivery)

	if replyJSON {
		return outputReplyJSON(cmd, result, delivery)
	}
	outputReplyText(cmd, result, delivery)
	return nil
}

func deliverReply(cmd *cobra.Command, emailText string, result *domain.PipelineResult) (domain.DeliveryResult, error) {
	if !domain.Mentioned(result.Fields.SenderEmail) {
		return domain.DeliveryResult{}, fmt.Errorf("no sender address found in the inquiry")
	}

	cfg := smtp.Config{
		Host:     settings.Email.SMTPServer,
		Port:     settings.Email.SMTPPort,
		Username: settings.Email.Username,
		Password: settings.Email.Password,
		From:     settings.Email.DefaultSender,
		DryRun:   replyDryRun,
	}
	if !replyDryRun && cfg.Password == "" {
		pw, err := promptPassword(cmd, cfg.Username)
		if err != nil {
			return domain.DeliveryResult{}, err
		}
		cfg.Password = pw
	}

	sender, err := newDeliverer(cfg)
	if err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("configure delivery: %w", err)
	}

	subject := replySubject
	if subject == "" {
		subject = subjectFor(emailText)
	}

	return sender.Send(cmd.Context(), domain.OutboundMessage{
		To:      result.Fields.SenderEmail,
		Subject: subject,
		Body:    result.FinalResponse,
	}), nil
}

func promptPassword(cmd *cobra.Command, username string) (string, error) {
	cmd.Printf("SMTP password for %s: ", username)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// recordInteraction appends to the audit trail when sheets logging is
// configured. Audit failures never fail the command.
func recordInteraction(ctx context.Context, result *domain.PipelineResult, delivery *domain.DeliveryResult) {
	if settings.Sheets.CredentialsPath == "" || settings.Sheets.SpreadsheetID == "" {
		return
	}

	log, err := newAuditLog(ctx, sheets.Config{
		CredentialsPath: settings.Sheets.CredentialsPath,
		SpreadsheetID:   settings.Sheets.SpreadsheetID,
		SheetName:       settings.Sheets.SheetName,
	})
	if err != nil {
		logger.Warn("audit log unavailable: %v", err)
		return
	}

	if err := log.Append(ctx, domain.InteractionRecord{
		Timestamp:     time.Now(),
		Fields:        result.Fields,
		OriginalEmail: result.OriginalEmail,
		Response:      result.FinalResponse,
		Status:        interactionStatus(delivery),
	}); err != nil {
		logger.Warn("audit log append failed: %v", err)
	}
}

func interactionStatus(delivery *domain.DeliveryResult) string {
	if delivery == nil {
		return "Draft"
	}
	switch delivery.Status {
	case domain.DeliverySent:
		return "Sent"
	case domain.DeliverySimulated:
		return "Draft"
	default:
		return "Error"
	}
}

type replyOutput struct {
	Fields        domain.ExtractedFields    `json:"fields"`
	Examples      []domain.RetrievedExample `json:"examples"`
	Draft         string                    `json:"draft"`
	Research      string                    `json:"research,omitempty"`
	FinalResponse string                    `json:"final_response"`
	Delivery      *domain.DeliveryResult    `json:"delivery,omitempty"`
}

func outputReplyJSON(cmd *cobra.Command, result *domain.PipelineResult, delivery *domain.DeliveryResult) error {
	data, err := json.MarshalIndent(replyOutput{
		Fields:        result.Fields,
		Examples:      result.Examples,
		Draft:         result.Draft,
		Research:      result.Research,
		FinalResponse: result.FinalResponse,
		Delivery:      delivery,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReplyText(cmd *cobra.Command, result *domain.PipelineResult, delivery *domain.DeliveryResult) {
	cmd.Println("Extracted fields:")
	for _, f := range result.Fields.Ordered() {
		cmd.Printf("  %s: %s\n", f.Name, f.Value)
	}
	cmd.Printf("\nSimilar exchanges used: %d\n", len(result.Examples))

	if result.Research != "" {
		cmd.Println("\nResearch brief:")
		cmd.Println(result.Research)
	}

	cmd.Println("\nComposed reply:")
	cmd.Println(result.FinalResponse)

	if delivery != nil {
		switch delivery.Status {
		case domain.DeliverySent:
			cmd.Printf("\nSent to %s.\n", result.Fields.SenderEmail)
		case domain.DeliverySimulated:
			cmd.Printf("\nDry run: reply was not sent.\n")
		default:
			cmd.Printf("\nDelivery failed: %s\n", delivery.Reason)
		}
	}
}
