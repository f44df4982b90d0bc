// Package consensus records agreements reached on a task.
package consensus

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/task"
)

// ErrEmptyConsensus is returned when the consensus text is blank.
var ErrEmptyConsensus = errors.New("consensus content is empty")

// ActivityAppender appends to a task's activity log.
type ActivityAppender interface {
	AppendActivity(ctx context.Context, id string, in activity.Input) (*task.Task, error)
}

// Service records consensus entries on behalf of the current actor.
type Service struct {
	tasks  ActivityAppender
	actor  activity.Actor
	logger *slog.Logger
}

// NewService creates a new consensus service.
func NewService(tasks ActivityAppender, actor activity.Actor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{tasks: tasks, actor: actor, logger: logger}
}

// Record appends a "recorded a consensus" entry with the trimmed content.
func (s *Service) Record(ctx context.Context, taskID, content string) (*task.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyConsensus
	}

	updated, err := s.tasks.AppendActivity(ctx, taskID, activity.Input{
		Actor:   s.actor,
		Action:  activity.ActionRecordedConsensus,
		Details: content,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("consensus recorded", "task_id", taskID, "actor", s.actor.Name)
	return updated, nil
}
