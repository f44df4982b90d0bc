package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/repository"
)

// Observer receives the committed value of every mutated task.
type Observer func(Task)

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for activity and history stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service is the task store: the only way task content changes.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time

	mu        sync.RWMutex
	observers []Observer
}

// NewService creates a new task service.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to run after each committed mutation, before the
// mutating call returns.
func (s *Service) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Create registers a task supplied at startup. Tags are normalized.
func (s *Service) Create(ctx context.Context, t *Task) error {
	if t == nil || strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Title) == "" {
		return ErrInvalidInput
	}
	rec := t.Clone()
	rec.Tags = NormalizeTags(rec.Tags)
	for i := range rec.Activities {
		rec.Activities[i].TaskID = rec.ID
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrTaskExists
		}
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// Get returns a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// List returns every task ordered by ID.
func (s *Service) List(ctx context.Context) ([]Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// AppendActivity appends one entry to the task's log.
func (s *Service) AppendActivity(ctx context.Context, id string, in activity.Input) (*Task, error) {
	return s.Apply(ctx, id, WithActivity(in))
}

// ApplyApproval replaces the design baseline. It does not log an activity.
func (s *Service) ApplyApproval(ctx context.Context, id string, a Approval) (*Task, error) {
	return s.Apply(ctx, id, WithApproval(a))
}

// SetStatus overwrites the status string.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*Task, error) {
	return s.Apply(ctx, id, WithStatus(status))
}

// Apply runs all mutations as a single update; either every mutation is
// committed or none is.
func (s *Service) Apply(ctx context.Context, id string, mutations ...Mutation) (*Task, error) {
	if id == "" || len(mutations) == 0 {
		return nil, ErrInvalidInput
	}

	now := s.now()
	updated, err := s.repo.Update(ctx, id, func(t *Task) error {
		for _, m := range mutations {
			if err := m(t, now); err != nil {
				return err
			}
		}
		t.Revision++
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, ErrInvalidInput):
			return nil, err
		default:
			return nil, fmt.Errorf("updating task: %w", err)
		}
	}

	s.logger.Debug("task updated", "task_id", id, "revision", updated.Revision, "mutations", len(mutations))
	s.notify(*updated)
	return updated, nil
}

func (s *Service) notify(t Task) {
	s.mu.RLock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(*t.Clone())
	}
}
