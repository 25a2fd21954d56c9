// Package driving provides interfaces for user-facing adapters (primary/inbound ports).
// The CLI and TUI drive the workflow exclusively through these interfaces.
package driving
