package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/domain/move"
	"github.com/rpggio/designboard/internal/domain/proposal"
	"github.com/rpggio/designboard/internal/domain/task"
)

// TaskService defines task reads needed by MCP.
type TaskService interface {
	Get(ctx context.Context, id string) (*task.Task, error)
	List(ctx context.Context) ([]task.Task, error)
}

// BoardService defines board reads needed by MCP.
type BoardService interface {
	Get(ctx context.Context) (*board.Board, error)
}

// MoveService moves tasks between columns.
type MoveService interface {
	Move(ctx context.Context, taskID, targetColumnID string) (move.Result, error)
}

// ConsensusService records consensus entries.
type ConsensusService interface {
	Record(ctx context.Context, taskID, content string) (*task.Task, error)
}

// ProposalService runs the propose-then-approve workflow.
type ProposalService interface {
	Propose(ctx context.Context, taskID, link, reason string) (*proposal.Pending, *task.Task, error)
	State(taskID string) proposal.State
	Pending(taskID string) (*proposal.Pending, bool)
}

// SelectionService tracks the open task.
type SelectionService interface {
	Select(ctx context.Context, taskID string) (*task.Task, error)
	Clear()
	Current() (*task.Task, bool)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tasks     TaskService
	Board     BoardService
	Mover     MoveService
	Consensus ConsensusService
	Proposals ProposalService
	Selection SelectionService
}

// Handler dispatches MCP commands.
type Handler struct {
	svc Services
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	result, err := h.dispatch(ctx, method, params)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "get_board":
		return h.boardOverview(ctx)
	case "get_task":
		var req GetTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Tasks.Get(ctx, req.TaskID)
	case "list_tasks":
		var req ListTasksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		tasks, err := h.svc.Tasks.List(ctx)
		if err != nil {
			return nil, err
		}
		resp := make([]task.Task, 0, len(tasks))
		for _, t := range tasks {
			if req.Status != "" && t.Status != req.Status {
				continue
			}
			if req.Tag != "" && !slices.Contains(t.Tags, req.Tag) {
				continue
			}
			resp = append(resp, t)
		}
		return resp, nil
	case "move_task":
		var req MoveTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Mover.Move(ctx, req.TaskID, req.ColumnID)
	case "record_consensus":
		var req RecordConsensusParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Consensus.Record(ctx, req.TaskID, req.Content)
	case "propose_design_change":
		var req ProposeDesignChangeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		pending, updated, err := h.svc.Proposals.Propose(ctx, req.TaskID, req.DesignLink, req.Reason)
		if err != nil {
			return nil, err
		}
		return ProposeDesignChangeResponse{
			ProposalID: pending.ID,
			State:      h.svc.Proposals.State(req.TaskID),
			Task:       updated,
		}, nil
	case "get_proposal_state":
		var req GetProposalStateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if _, err := h.svc.Tasks.Get(ctx, req.TaskID); err != nil {
			return nil, err
		}
		resp := ProposalStateResponse{TaskID: req.TaskID, State: h.svc.Proposals.State(req.TaskID)}
		if p, ok := h.svc.Proposals.Pending(req.TaskID); ok {
			resp.ProposalID = p.ID
			resp.DesignLink = p.Link
		}
		return resp, nil
	case "select_task":
		var req SelectTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		selected, err := h.svc.Selection.Select(ctx, req.TaskID)
		if err != nil {
			return nil, err
		}
		return SelectionResponse{Selected: true, Task: selected}, nil
	case "clear_selection":
		h.svc.Selection.Clear()
		return SelectionResponse{}, nil
	case "get_selection":
		current, ok := h.svc.Selection.Current()
		return SelectionResponse{Selected: ok, Task: current}, nil
	case "get_activity":
		var req GetActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		t, err := h.svc.Tasks.Get(ctx, req.TaskID)
		if err != nil {
			return nil, err
		}
		return ActivityResponse{
			TaskID: t.ID,
			Entries: activity.List(t.Activities, activity.ListOptions{
				Actions: req.Actions,
				Limit:   req.Limit,
				Offset:  req.Offset,
			}),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func (h *Handler) boardOverview(ctx context.Context) (BoardResponse, error) {
	b, err := h.svc.Board.Get(ctx)
	if err != nil {
		return BoardResponse{}, err
	}
	tasks, err := h.svc.Tasks.List(ctx)
	if err != nil {
		return BoardResponse{}, err
	}
	byID := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	resp := BoardResponse{
		ProjectID:   b.ProjectID,
		ProjectName: b.ProjectName,
		Columns:     make([]ColumnView, 0, len(b.Columns)),
	}
	for _, col := range b.Columns {
		view := ColumnView{ID: col.ID, Title: col.Title, Cards: make([]CardView, 0, len(col.TaskIDs))}
		for _, id := range col.TaskIDs {
			t, ok := byID[id]
			if !ok {
				continue
			}
			view.Cards = append(view.Cards, card(t))
		}
		resp.Columns = append(resp.Columns, view)
	}
	return resp, nil
}

func card(t task.Task) CardView {
	c := CardView{
		ID:         t.ID,
		Title:      t.Title,
		Status:     t.Status,
		Tags:       t.Tags,
		Assignee:   t.Assignee,
		DueDate:    t.DueDate,
		PreviewURL: t.PreviewURL,
		HasDesign:  t.DesignLink != "",
	}
	if latest, ok := activity.Latest(t.Activities); ok {
		c.LatestActivity = activity.Summary(latest)
	} else if t.CurrentVersion != "" {
		c.LatestActivity = "Design: " + t.CurrentVersion
	}
	return c
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
