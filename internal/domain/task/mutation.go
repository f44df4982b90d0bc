package task

import (
	"strings"
	"time"

	"github.com/rpggio/designboard/internal/domain/activity"
)

// Mutation changes a task in place. now is the commit time shared by every
// mutation applied in the same update.
type Mutation func(t *Task, now time.Time) error

// WithActivity appends a log entry.
func WithActivity(in activity.Input) Mutation {
	return func(t *Task, now time.Time) error {
		if strings.TrimSpace(in.Action) == "" {
			return ErrInvalidInput
		}
		t.Activities = append(t.Activities, activity.New(t.ID, in, now))
		return nil
	}
}

// WithApproval replaces the design baseline and prepends a history entry
// dated at now.
func WithApproval(a Approval) Mutation {
	return func(t *Task, now time.Time) error {
		if strings.TrimSpace(a.DesignLink) == "" {
			return ErrInvalidInput
		}
		label := a.HistoryLabel
		if label == "" {
			label = a.VersionLabel
		}
		entry := DesignVersion{
			Version: label,
			Link:    a.DesignLink,
			Date:    now.Format(time.DateOnly),
		}
		t.DesignLink = a.DesignLink
		t.PreviewURL = a.PreviewURL
		t.CurrentVersion = a.VersionLabel
		t.VersionHistory = append([]DesignVersion{entry}, t.VersionHistory...)
		return nil
	}
}

// WithStatus sets the status string.
func WithStatus(status string) Mutation {
	return func(t *Task, _ time.Time) error {
		if strings.TrimSpace(status) == "" {
			return ErrInvalidInput
		}
		t.Status = status
		return nil
	}
}
