// Package smtp delivers composed replies over SMTP with STARTTLS.
package smtp

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

// Ensure Sender implements the interface.
var _ driven.Deliverer = (*Sender)(nil)

// DefaultPort is the standard submission port.
const DefaultPort = 587

// Config holds SMTP connection settings.
type Config struct {
	// Host is the SMTP server hostname (required).
	Host string

	// Port is the SMTP server port (default: 587).
	Port int

	// Username authenticates the session (required).
	Username string

	// Password authenticates the session (required).
	Password string

	// From is the sender address (default: Username).
	From string

	// DryRun skips the network send and reports a simulated outcome.
	// It must be requested explicitly; there is no automatic fallback
	// from a failed send to a simulated one.
	DryRun bool
}

// Sender sends messages through one SMTP server.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
}

// NewSender creates an SMTP sender. Dry-run mode still requires no
// credentials since nothing is sent.
func NewSender(cfg Config) (*Sender, error) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.DryRun {
		return &Sender{from: cfg.From, dryRun: true}, nil
	}
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp: host, username and password are required: %w", domain.ErrConfiguration)
	}
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

// Send delivers one message. The result is an explicit tagged outcome;
// a dry run is always reported as simulated, never as sent.
func (s *Sender) Send(ctx context.Context, msg domain.OutboundMessage) domain.DeliveryResult {
	if msg.To == "" {
		return domain.DeliveryResult{
			Status: domain.DeliveryFailed,
			Reason: "no recipient address",
		}
	}

	if s.dryRun {
		logger.Info("dry run: would send %q to %s", msg.Subject, msg.To)
		return domain.DeliveryResult{Status: domain.DeliverySimulated}
	}

	if err := ctx.Err(); err != nil {
		return domain.DeliveryResult{Status: domain.DeliveryFailed, Reason: err.Error()}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		logger.Warn("send failed: %v", err)
		return domain.DeliveryResult{
			Status: domain.DeliveryFailed,
			Reason: err.Error(),
		}
	}

	logger.Info("sent %q to %s", msg.Subject, msg.To)
	return domain.DeliveryResult{Status: domain.DeliverySent}
}
