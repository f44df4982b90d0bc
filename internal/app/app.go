// Package app assembles the board engine from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/designboard/internal/config"
	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/domain/consensus"
	"github.com/rpggio/designboard/internal/domain/move"
	"github.com/rpggio/designboard/internal/domain/proposal"
	"github.com/rpggio/designboard/internal/domain/selection"
	"github.com/rpggio/designboard/internal/domain/task"
	"github.com/rpggio/designboard/internal/mcp"
	"github.com/rpggio/designboard/internal/memory"
	"github.com/rpggio/designboard/internal/seed"
)

// App holds every wired service for one board session.
type App struct {
	Tasks     *task.Service
	Board     *board.Service
	Mover     *move.Coordinator
	Consensus *consensus.Service
	Proposals *proposal.Workflow
	Selection *selection.Selection
	Handler   *mcp.Handler
}

// Option adjusts how the app is assembled.
type Option func(*options)

type options struct {
	seed         *seed.Document
	proposalOpts []proposal.Option
	taskOpts     []task.Option
}

// WithSeed loads doc instead of the configured seed.
func WithSeed(doc *seed.Document) Option {
	return func(o *options) { o.seed = doc }
}

// WithProposalOptions forwards options to the proposal workflow.
func WithProposalOptions(opts ...proposal.Option) Option {
	return func(o *options) { o.proposalOpts = append(o.proposalOpts, opts...) }
}

// WithTaskOptions forwards options to the task store.
func WithTaskOptions(opts ...task.Option) Option {
	return func(o *options) { o.taskOpts = append(o.taskOpts, opts...) }
}

// New builds the services on in-memory storage and loads the seed.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	doc := o.seed
	if doc == nil {
		var err error
		doc, err = loadSeed(cfg.Seed.Path)
		if err != nil {
			return nil, err
		}
	}

	store := memory.New()
	tasks := task.NewService(store.Tasks, logger.With("component", "tasks"), o.taskOpts...)
	boards := board.NewService(store.Boards, logger.With("component", "board"))
	if err := seed.Apply(ctx, doc, tasks, boards); err != nil {
		return nil, fmt.Errorf("applying seed: %w", err)
	}

	sel := selection.New(tasks)
	tasks.Subscribe(sel.Refresh)

	a := &App{
		Tasks:     tasks,
		Board:     boards,
		Mover:     move.NewCoordinator(boards, tasks, logger.With("component", "move")),
		Consensus: consensus.NewService(tasks, cfg.Workflow.Actor, logger.With("component", "consensus")),
		Proposals: proposal.NewWorkflow(tasks, cfg.Workflow.Proposal(), logger.With("component", "proposal"), o.proposalOpts...),
		Selection: sel,
	}
	a.Handler = mcp.NewHandler(a.Services())

	logger.Info("board loaded", "project_id", doc.Project.ID, "columns", len(doc.Columns), "tasks", len(doc.Tasks))
	return a, nil
}

// Services returns the dependencies of the MCP layer.
func (a *App) Services() mcp.Services {
	return mcp.Services{
		Tasks:     a.Tasks,
		Board:     a.Board,
		Mover:     a.Mover,
		Consensus: a.Consensus,
		Proposals: a.Proposals,
		Selection: a.Selection,
	}
}

// MCPServer creates an MCP tool server over the app's services.
func (a *App) MCPServer(version string, logger *slog.Logger) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{Services: a.Services(), Version: version, Logger: logger})
}

// Close stops pending approvals.
func (a *App) Close() {
	a.Proposals.Close()
}

func loadSeed(path string) (*seed.Document, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.Load(path)
}
