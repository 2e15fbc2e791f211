// Package driving provides interfaces for primary adapters (CLI, TUI)
// to invoke core services.
package driving
