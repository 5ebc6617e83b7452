package application

import (
	"context"

	domain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// WorkflowReader reads workflow records from the server.
type WorkflowReader interface {
	ListWorkflows(ctx context.Context) ([]domain.Workflow, error)
	GetWorkflow(ctx context.Context, id string) (domain.Workflow, error)
}

// WorkflowWriter mutates workflow records on the server.
type WorkflowWriter interface {
	CreateWorkflow(ctx context.Context, req domain.CreateRequest) (domain.CreateResult, error)
	DeleteWorkflow(ctx context.Context, id string) error
}

// WorkflowAPI combines read and write operations.
// This is the full interface implemented by api.Client.
type WorkflowAPI interface {
	WorkflowReader
	WorkflowWriter
}

// AnalyticsRecorder stores the outcome of a workflow creation for reporting.
type AnalyticsRecorder interface {
	StoreWorkflowData(ctx context.Context, result domain.CreateResult) error
}

// Confirmer asks the user whether a destructive operation may proceed.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm is used where the caller has already obtained consent, such
// as a confirmation modal that only dispatches on "yes".
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })
