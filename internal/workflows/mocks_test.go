package workflows

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/skillforge/internal/workflows/domain"
)

type mockWorkflowAPI struct {
	mock.Mock
}

func (m *mockWorkflowAPI) ListWorkflows(ctx context.Context) ([]domain.Workflow, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]domain.Workflow)
	return records, args.Error(1)
}

func (m *mockWorkflowAPI) GetWorkflow(ctx context.Context, id string) (domain.Workflow, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Workflow), args.Error(1)
}

func (m *mockWorkflowAPI) CreateWorkflow(ctx context.Context, req domain.CreateRequest) (domain.CreateResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.CreateResult), args.Error(1)
}

func (m *mockWorkflowAPI) DeleteWorkflow(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) StoreWorkflowData(ctx context.Context, result domain.CreateResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
