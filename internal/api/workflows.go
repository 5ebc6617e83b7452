package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zjrosen/skillforge/internal/log"
	wfapp "github.com/zjrosen/skillforge/internal/workflows/application"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

var (
	_ wfapp.WorkflowAPI       = (*Client)(nil)
	_ wfapp.AnalyticsRecorder = (*Client)(nil)
)

type listResponse struct {
	Workflows []json.RawMessage `json:"workflows"`
	Total     int                 `json:"total"`
	Framework string              `json:"framework"`
}

type detailResponse struct {
	Workflow *wfdomain.Workflow `json:"workflow"`
}

// DeleteResult is the server's answer to a delete request.
type DeleteResult struct {
	WorkflowID string `json:"workflow_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// ListWorkflows fetches every workflow record.
func (c *Client) ListWorkflows(ctx context.Context) ([]wfdomain.Workflow, error) {
	var resp listResponse
	if err := c.doJSON(ctx, call{op: "list_workflows", method: http.MethodGet, route: "/api/workflows/list"}, &resp); err != nil {
		return nil, err
	}
	// Records decode one by one so a malformed entry costs only itself.
	records := make([]wfdomain.Workflow, 0, len(resp.Workflows))
	for i, raw := range resp.Workflows {
		var w wfdomain.Workflow
		if err := json.Unmarshal(raw, &w); err != nil {
			log.Warn(log.CatAPI, "Skipping unreadable workflow record", "index", i, "error", err)
			continue
		}
		records = append(records, w)
	}
	return records, nil
}

// GetWorkflow fetches one record. A 404 is reported as *domain.NotFoundError.
func (c *Client) GetWorkflow(ctx context.Context, id string) (wfdomain.Workflow, error) {
	var resp detailResponse
	err := c.doJSON(ctx, call{
		op:         "get_workflow",
		method:     http.MethodGet,
		route:      "/api/workflows/detail/{workflow_id}",
		pathParams: map[string]string{"workflow_id": id},
	}, &resp)
	if IsNotFound(err) {
		return wfdomain.Workflow{}, &wfdomain.NotFoundError{ID: id}
	}
	if err != nil {
		return wfdomain.Workflow{}, err
	}
	if resp.Workflow == nil {
		return wfdomain.Workflow{}, fmt.Errorf("get_workflow: response has no workflow for %q", id)
	}
	w := *resp.Workflow
	if w.ID == "" {
		w.ID = id
	}
	return w, nil
}

// CreateWorkflow submits a new workflow and returns the server's result.
func (c *Client) CreateWorkflow(ctx context.Context, req wfdomain.CreateRequest) (wfdomain.CreateResult, error) {
	if req.Requirements == nil {
		req.Requirements = []string{}
	}
	var result wfdomain.CreateResult
	err := c.doJSON(ctx, call{
		op:     "create_workflow",
		method: http.MethodPost,
		route:  "/api/workflows/create",
		body:   req,
	}, &result)
	return result, err
}

// DeleteWorkflow deletes a workflow on the server.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	_, err := c.DeleteWorkflowResult(ctx, id)
	return err
}

// DeleteWorkflowResult deletes a workflow and returns the server's answer.
func (c *Client) DeleteWorkflowResult(ctx context.Context, id string) (DeleteResult, error) {
	var result DeleteResult
	err := c.doJSON(ctx, call{
		op:         "delete_workflow",
		method:     http.MethodDelete,
		route:      "/api/workflows/delete/{workflow_id}",
		pathParams: map[string]string{"workflow_id": id},
	}, &result)
	return result, err
}

// StoreWorkflowData records a creation result with the analytics service.
func (c *Client) StoreWorkflowData(ctx context.Context, result wfdomain.CreateResult) error {
	_, err := c.do(ctx, call{
		op:     "store_workflow_data",
		method: http.MethodPost,
		route:  "/api/analytics/store-workflow-data",
		body:   result,
	})
	return err
}
