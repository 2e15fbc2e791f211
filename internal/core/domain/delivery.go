package domain

import "time"

// OutboundMessage is a composed reply ready for delivery.
type OutboundMessage struct {
	To      string
	Cc      []string
	Subject string
	Body    string
}

// DeliveryStatus is the outcome tag of a delivery attempt.
type DeliveryStatus string

const (
	// DeliverySent means the message was accepted by the mail server.
	DeliverySent DeliveryStatus = "sent"

	// DeliveryFailed means the message could not be delivered.
	DeliveryFailed DeliveryStatus = "failed"

	// DeliverySimulated means the send was skipped under an explicit
	// dry-run flag. Never reported as a real send.
	DeliverySimulated DeliveryStatus = "simulated"
)

// DeliveryResult is the explicit outcome of a delivery attempt.
// There is no silent fallback path: a failure stays a failure.
type DeliveryResult struct {
	Status DeliveryStatus

	// Reason carries the failure detail when Status is DeliveryFailed.
	Reason string
}

// Delivered reports whether the message actually went out.
func (r DeliveryResult) Delivered() bool {
	return r.Status == DeliverySent
}

// InteractionRecord is one processed email logged to the audit trail.
type InteractionRecord struct {
	Timestamp     time.Time
	Fields        ExtractedFields
	OriginalEmail string
	Response      string

	// Status is the terminal pipeline state for the email,
	// e.g. "Sent", "Draft", "Error".
	Status string
}
