// Package driving defines the interfaces the CLI and TUI use to drive
// the core services.
package driving
