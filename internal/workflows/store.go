// Package workflows owns the client-side view of the server's workflow
// records.
//
// A Store caches the last successful list response and renders it through
// domain.Reconcile. Mutations go to the server first; the cache is only
// ever replaced wholesale by a refresh.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/skillforge/internal/log"
	wfapp "github.com/zjrosen/skillforge/internal/workflows/application"
	"github.com/zjrosen/skillforge/internal/workflows/domain"
)

// ErrRemoveCancelled is returned by Remove when the user declines.
var ErrRemoveCancelled = errors.New("workflow removal cancelled")

// RemovePrompt is the question put to the Confirmer before a delete.
const RemovePrompt = "Are you sure you want to delete this workflow? This action cannot be undone."

const (
	defaultAnalyticsTimeout = 10 * time.Second
	defaultDetailTTL        = 5 * time.Minute
)

// ListView is the rendered form of a record set.
type ListView struct {
	Workflows []domain.Workflow
	// Empty is set when there is nothing to list and the placeholder is shown.
	Empty       bool
	Placeholder string
}

// Render reconciles records for display. It is pure and idempotent.
func Render(records []domain.Workflow) ListView {
	workflows := domain.Reconcile(records)
	if len(workflows) == 0 {
		return ListView{Workflows: workflows, Empty: true, Placeholder: domain.EmptyPlaceholder}
	}
	return ListView{Workflows: workflows}
}

// Store is the in-memory cache of workflow records. It is safe for
// concurrent use.
type Store struct {
	api              wfapp.WorkflowAPI
	analytics        wfapp.AnalyticsRecorder
	analyticsTimeout time.Duration

	mu      sync.RWMutex
	records []domain.Workflow
	loaded  bool

	// details memoizes records fetched by Detail that were not in the list.
	details *cache.Cache
	pending sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithAnalytics enables the analytics write after each successful create.
func WithAnalytics(recorder wfapp.AnalyticsRecorder) Option {
	return func(s *Store) {
		s.analytics = recorder
	}
}

// WithAnalyticsTimeout bounds each detached analytics write.
func WithAnalyticsTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.analyticsTimeout = d
	}
}

// WithDetailTTL sets how long fetched detail records are memoized.
func WithDetailTTL(d time.Duration) Option {
	return func(s *Store) {
		s.details = cache.New(d, 2*d)
	}
}

// New creates an empty store backed by api.
func New(api wfapp.WorkflowAPI, opts ...Option) *Store {
	s := &Store{
		api:              api,
		analyticsTimeout: defaultAnalyticsTimeout,
		details:          cache.New(defaultDetailTTL, 2*defaultDetailTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh replaces the cache with the server's current list. On failure the
// previous cache is kept and the error is returned.
func (s *Store) Refresh(ctx context.Context) error {
	records, err := s.api.ListWorkflows(ctx)
	if err != nil {
		log.ErrorErr(log.CatStore, "Refresh failed, keeping cached workflows", err)
		return fmt.Errorf("refreshing workflows: %w", err)
	}

	s.mu.Lock()
	s.records = records
	s.loaded = true
	s.mu.Unlock()
	s.details.Flush()

	log.Debug(log.CatStore, "Workflows refreshed", "count", len(records))
	return nil
}

// Loaded reports whether at least one refresh has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// View renders the current cache.
func (s *Store) View() ListView {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()
	return Render(records)
}

// Create submits a new workflow. A successful create starts a detached
// analytics write and refreshes the list before returning. Neither of those
// follow-ups can fail the create.
func (s *Store) Create(ctx context.Context, req domain.CreateRequest) (domain.CreateResult, error) {
	if err := req.Validate(); err != nil {
		return domain.CreateResult{}, err
	}

	result, err := s.api.CreateWorkflow(ctx, req)
	if err != nil {
		log.ErrorErr(log.CatStore, "Create failed", err, "name", req.Name)
		return domain.CreateResult{}, fmt.Errorf("creating workflow: %w", err)
	}
	log.Info(log.CatStore, "Workflow created", "id", result.WorkflowID, "status", result.Status)

	s.recordAnalytics(ctx, result)

	if err := s.Refresh(ctx); err != nil {
		log.Warn(log.CatStore, "Refresh after create failed", "id", result.WorkflowID)
	}
	return result, nil
}

// recordAnalytics sends result to the analytics recorder on its own
// goroutine. The caller never waits for it and its error is only logged.
func (s *Store) recordAnalytics(ctx context.Context, result domain.CreateResult) {
	if s.analytics == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.analyticsTimeout)
		defer cancel()
		if err := s.analytics.StoreWorkflowData(actx, result); err != nil {
			log.ErrorErr(log.CatStore, "Analytics write failed", err, "id", result.WorkflowID)
			return
		}
		log.Debug(log.CatStore, "Analytics recorded", "id", result.WorkflowID)
	}()
}

// Remove deletes a workflow after confirm agrees. A declined confirmation
// returns ErrRemoveCancelled without contacting the server.
func (s *Store) Remove(ctx context.Context, id string, confirm wfapp.Confirmer) error {
	ok, err := confirm.Confirm(RemovePrompt)
	if err != nil {
		return fmt.Errorf("confirming removal: %w", err)
	}
	if !ok {
		log.Debug(log.CatStore, "Removal declined", "id", id)
		return ErrRemoveCancelled
	}

	if err := s.api.DeleteWorkflow(ctx, id); err != nil {
		log.ErrorErr(log.CatStore, "Delete failed", err, "id", id)
		return fmt.Errorf("deleting workflow %s: %w", id, err)
	}
	log.Info(log.CatStore, "Workflow deleted", "id", id)
	s.details.Delete(id)

	if err := s.Refresh(ctx); err != nil {
		log.Warn(log.CatStore, "Refresh after delete failed", "id", id)
	}
	return nil
}

// Detail returns the record with the given id. The cached list is checked
// first; on a miss the server is asked and the answer memoized until the
// next successful refresh.
func (s *Store) Detail(ctx context.Context, id string) (domain.Workflow, error) {
	for _, w := range s.View().Workflows {
		if w.ID == id {
			return w, nil
		}
	}
	if cached, ok := s.details.Get(id); ok {
		return cached.(domain.Workflow), nil
	}

	w, err := s.api.GetWorkflow(ctx, id)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Workflow{}, err
		}
		return domain.Workflow{}, fmt.Errorf("fetching workflow %s: %w", id, err)
	}
	s.details.SetDefault(id, w)
	return w, nil
}

// Close waits for outstanding analytics writes.
func (s *Store) Close() {
	s.pending.Wait()
}
