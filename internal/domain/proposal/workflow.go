// Package proposal implements the propose-then-approve design change
// workflow. A proposal is logged immediately and approved by a fixed
// approver after a configured delay.
package proposal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/task"
)

// TaskStore applies atomic mutations to tasks.
type TaskStore interface {
	Apply(ctx context.Context, id string, mutations ...task.Mutation) (*task.Task, error)
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithScheduler replaces the runtime timer.
func WithScheduler(s Scheduler) Option {
	return func(w *Workflow) { w.scheduler = s }
}

// WithClock overrides the time source used for version labels.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// Workflow tracks proposals and their scheduled approvals.
type Workflow struct {
	tasks     TaskStore
	cfg       Config
	scheduler Scheduler
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.Mutex
	pending map[string]*Pending
	states  map[string]State
	closed  bool
}

// NewWorkflow creates a new proposal workflow.
func NewWorkflow(tasks TaskStore, cfg Config, logger *slog.Logger, opts ...Option) *Workflow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Workflow{
		tasks:     tasks,
		cfg:       cfg.withDefaults(),
		scheduler: TimerScheduler{},
		now:       time.Now,
		logger:    logger,
		pending:   make(map[string]*Pending),
		states:    make(map[string]State),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Propose logs a design change proposal for taskID and schedules its
// approval. The returned task carries the proposal entry.
func (w *Workflow) Propose(ctx context.Context, taskID, link, reason string) (*Pending, *task.Task, error) {
	link = strings.TrimSpace(link)
	reason = strings.TrimSpace(reason)
	if link == "" || reason == "" {
		return nil, nil, ErrInvalidProposal
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWorkflowClosed
	}
	if _, ok := w.pending[taskID]; ok {
		return nil, nil, ErrProposalPending
	}

	updated, err := w.tasks.Apply(ctx, taskID, task.WithActivity(activity.Input{
		Actor:   w.cfg.Actor,
		Action:  activity.ActionProposedChange,
		Details: fmt.Sprintf("New design link: %s\nReason: %s", link, reason),
	}))
	if err != nil {
		return nil, nil, err
	}

	p := newPending(uuid.NewString(), taskID, link)
	approveCtx := context.WithoutCancel(ctx)
	p.timer = w.scheduler.AfterFunc(w.cfg.ApprovalDelay, func() {
		w.approve(approveCtx, p)
	})
	w.pending[taskID] = p
	w.states[taskID] = StateSubmitted

	w.logger.Info("design change proposed",
		"task_id", taskID,
		"proposal_id", p.ID,
		"approval_delay", w.cfg.ApprovalDelay,
	)
	return p, updated, nil
}

// approve commits the approval entry and the new baseline in one update.
func (w *Workflow) approve(ctx context.Context, p *Pending) {
	date := w.now().Format(time.DateOnly)
	_, err := w.tasks.Apply(ctx, p.TaskID,
		task.WithActivity(activity.Input{
			Actor:   w.cfg.Approver,
			Action:  activity.ActionApprovedChange,
			Details: fmt.Sprintf("Approved the design change proposed by %s.\nNew design: %s", w.cfg.Actor.Name, p.Link),
		}),
		task.WithApproval(task.Approval{
			DesignLink:   p.Link,
			PreviewURL:   previewURL(w.cfg.PreviewBaseURL, p.Link),
			VersionLabel: "New design (approved) - " + date,
			HistoryLabel: "New design - " + date,
		}),
	)

	w.mu.Lock()
	if w.pending[p.TaskID] == p {
		delete(w.pending, p.TaskID)
	}
	if err != nil {
		w.states[p.TaskID] = StateNone
	} else {
		w.states[p.TaskID] = StateApproved
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("approval failed", "task_id", p.TaskID, "proposal_id", p.ID, "error", err)
	} else {
		w.logger.Info("design change approved", "task_id", p.TaskID, "proposal_id", p.ID, "approver", w.cfg.Approver.Name)
	}
	p.finish(err)
}

// State reports the proposal state of taskID.
func (w *Workflow) State(taskID string) State {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.states[taskID]; ok {
		return s
	}
	return StateNone
}

// Pending returns the approval scheduled for taskID, if any.
func (w *Workflow) Pending(taskID string) (*Pending, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[taskID]
	return p, ok
}

// Close stops every approval that has not started and rejects new
// proposals. Approvals already running complete normally.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	for taskID, p := range w.pending {
		if p.timer.Stop() {
			delete(w.pending, taskID)
			w.states[taskID] = StateNone
			p.finish(ErrWorkflowClosed)
		}
	}
}
