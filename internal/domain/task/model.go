package task

import (
	"time"

	"github.com/rpggio/designboard/internal/domain/activity"
)

// Assignee references the user a task is assigned to.
type Assignee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// DesignVersion is one entry of a task's design history.
type DesignVersion struct {
	Version string `json:"version"`
	Link    string `json:"link"`
	Date    string `json:"date"`
}

// Task is the canonical record for a unit of work on the board.
type Task struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	Status         string              `json:"status"`
	DueDate        *time.Time          `json:"due_date,omitempty"`
	Tags           []string            `json:"tags"`
	Assignee       *Assignee           `json:"assignee,omitempty"`
	DesignLink     string              `json:"design_link,omitempty"`
	PreviewURL     string              `json:"preview_url,omitempty"`
	CurrentVersion string              `json:"current_version,omitempty"`
	VersionHistory []DesignVersion     `json:"version_history"`
	Activities     []activity.Activity `json:"activities"`
	Revision       int64               `json:"revision"`
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.Assignee != nil {
		assignee := *t.Assignee
		out.Assignee = &assignee
	}
	out.Tags = append([]string{}, t.Tags...)
	out.VersionHistory = append([]DesignVersion{}, t.VersionHistory...)
	out.Activities = append([]activity.Activity{}, t.Activities...)
	return &out
}

// NormalizeTags removes empty and duplicate tags, keeping first occurrence order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Approval describes a new design baseline for a task.
type Approval struct {
	DesignLink   string
	PreviewURL   string
	VersionLabel string
	// HistoryLabel names the version-history entry; VersionLabel is used when empty.
	HistoryLabel string
}
