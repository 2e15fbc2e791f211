package driven

import (
	"context"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
)

// FieldExtractor pulls structured fields from raw inbound email text.
// Every recognised field is always present in the result; values the
// extractor cannot find carry the domain.NotMentioned sentinel.
type FieldExtractor interface {
	Extract(ctx context.Context, emailText string) (domain.ExtractedFields, error)
}

// Researcher gathers a free-text research brief about the sender's
// company. The core treats the brief as an opaque string.
type Researcher interface {
	Research(ctx context.Context, fields domain.ExtractedFields) (string, error)
}

// Deliverer sends a composed reply. The result is an explicit tagged
// outcome; implementations must never report a simulated send as real.
type Deliverer interface {
	Send(ctx context.Context, msg domain.OutboundMessage) domain.DeliveryResult
}

// InteractionLog is the append-only audit trail of processed emails.
type InteractionLog interface {
	Append(ctx context.Context, rec domain.InteractionRecord) error
}
