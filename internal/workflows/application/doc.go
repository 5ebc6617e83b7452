// Package application defines the ports the workflow store depends on.
//
// The store in internal/workflows owns the cached view of workflow records
// and talks to the outside world only through these interfaces:
//   - WorkflowReader / WorkflowWriter: the workflow endpoints of the API
//   - AnalyticsRecorder: the fire-and-forget analytics side channel
//   - Confirmer: user consent before a delete
//
// api.Client implements the first three. Confirmers come from the caller:
// a survey prompt on the CLI, or AlwaysConfirm behind the TUI's modal.
//
// # Import Aliasing
//
//	import (
//	    wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
//	    wfapp "github.com/zjrosen/skillforge/internal/workflows/application"
//	)
package application
