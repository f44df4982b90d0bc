package activity

import (
	"time"

	"github.com/google/uuid"
)

// Action labels recorded by the board engine.
const (
	ActionRecordedConsensus = "recorded a consensus"
	ActionProposedChange    = "proposed a design change"
	ActionApprovedChange    = "approved the design change"
)

// Actor identifies who performed an action.
type Actor struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Activity is a single entry in a task's append-only log.
type Activity struct {
	ID         string    `json:"id" yaml:"id"`
	TaskID     string    `json:"task_id" yaml:"-"`
	UserName   string    `json:"user_name" yaml:"user_name"`
	UserAvatar string    `json:"user_avatar,omitempty" yaml:"user_avatar,omitempty"`
	Action     string    `json:"action" yaml:"action"`
	Details    string    `json:"details,omitempty" yaml:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Input is an activity before an ID and timestamp are assigned.
type Input struct {
	Actor   Actor
	Action  string
	Details string
}

// NewID returns an identifier unique within the given task.
func NewID(taskID string) string {
	return "act-" + taskID + "-" + uuid.NewString()
}

// New builds a log entry for taskID stamped at now.
func New(taskID string, in Input, now time.Time) Activity {
	return Activity{
		ID:         NewID(taskID),
		TaskID:     taskID,
		UserName:   in.Actor.Name,
		UserAvatar: in.Actor.Avatar,
		Action:     in.Action,
		Details:    in.Details,
		CreatedAt:  now,
	}
}
