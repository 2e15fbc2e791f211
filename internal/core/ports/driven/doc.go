// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding and generative providers, the
// similarity index, field extraction, web research, mail delivery, and
// the audit log.
package driven
