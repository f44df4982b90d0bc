package mcp

import (
	"time"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/proposal"
	"github.com/rpggio/designboard/internal/domain/task"
)

type EmptyParams struct{}

type GetTaskParams struct {
	TaskID string `json:"task_id" jsonschema:"Task ID, for example T-01"`
}

type ListTasksParams struct {
	Status string `json:"status,omitempty" jsonschema:"Only tasks whose status equals this value"`
	Tag    string `json:"tag,omitempty" jsonschema:"Only tasks carrying this tag"`
}

type MoveTaskParams struct {
	TaskID   string `json:"task_id" jsonschema:"Task to move"`
	ColumnID string `json:"column_id" jsonschema:"Target column ID"`
}

type RecordConsensusParams struct {
	TaskID  string `json:"task_id" jsonschema:"Task the consensus applies to"`
	Content string `json:"content" jsonschema:"What was agreed"`
}

type ProposeDesignChangeParams struct {
	TaskID     string `json:"task_id" jsonschema:"Task whose design should change"`
	DesignLink string `json:"design_link" jsonschema:"Link to the proposed design"`
	Reason     string `json:"reason" jsonschema:"Why the change is needed"`
}

type GetProposalStateParams struct {
	TaskID string `json:"task_id" jsonschema:"Task ID"`
}

type SelectTaskParams struct {
	TaskID string `json:"task_id" jsonschema:"Task to open"`
}

type GetActivityParams struct {
	TaskID  string   `json:"task_id" jsonschema:"Task ID"`
	Actions []string `json:"actions,omitempty" jsonschema:"Only entries with these actions"`
	Limit   int      `json:"limit,omitempty" jsonschema:"Maximum number of entries"`
	Offset  int      `json:"offset,omitempty" jsonschema:"Entries to skip"`
}

// CardView is a task as shown on the board.
type CardView struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Status         string         `json:"status"`
	Tags           []string       `json:"tags"`
	Assignee       *task.Assignee `json:"assignee,omitempty"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	PreviewURL     string         `json:"preview_url,omitempty"`
	HasDesign      bool           `json:"has_design"`
	LatestActivity string         `json:"latest_activity,omitempty"`
}

type ColumnView struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Cards []CardView `json:"cards"`
}

type BoardResponse struct {
	ProjectID   string       `json:"project_id"`
	ProjectName string       `json:"project_name"`
	Columns     []ColumnView `json:"columns"`
}

type ProposeDesignChangeResponse struct {
	ProposalID string         `json:"proposal_id"`
	State      proposal.State `json:"state"`
	Task       *task.Task     `json:"task"`
}

type ProposalStateResponse struct {
	TaskID     string         `json:"task_id"`
	State      proposal.State `json:"state"`
	ProposalID string         `json:"proposal_id,omitempty"`
	DesignLink string         `json:"design_link,omitempty"`
}

type SelectionResponse struct {
	Selected bool       `json:"selected"`
	Task     *task.Task `json:"task,omitempty"`
}

type ActivityResponse struct {
	TaskID  string              `json:"task_id"`
	Entries []activity.Activity `json:"entries"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
