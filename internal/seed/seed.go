// Package seed loads the board and tasks a session starts with.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/domain/task"
)

//go:embed default.yaml
var defaultDocument []byte

// ErrInvalidSeed is returned for documents that cannot produce a consistent board.
var ErrInvalidSeed = errors.New("invalid seed document")

// Document is the on-disk seed format.
type Document struct {
	Project Project  `yaml:"project"`
	Columns []Column `yaml:"columns"`
	Tasks   []Task   `yaml:"tasks"`
}

type Project struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Column struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	TaskIDs []string `yaml:"task_ids"`
}

type Task struct {
	ID             string               `yaml:"id"`
	Title          string               `yaml:"title"`
	Description    string               `yaml:"description"`
	Status         string               `yaml:"status"`
	DueDate        string               `yaml:"due_date"`
	Tags           []string             `yaml:"tags"`
	Assignee       *task.Assignee       `yaml:"assignee"`
	DesignLink     string               `yaml:"design_link"`
	PreviewURL     string               `yaml:"preview_url"`
	CurrentVersion string               `yaml:"current_version"`
	VersionHistory []task.DesignVersion `yaml:"version_history"`
	Activities     []activity.Activity  `yaml:"activities"`
}

// Default returns the built-in demo board.
func Default() (*Document, error) {
	return Parse(defaultDocument)
}

// Load reads a seed document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return &doc, nil
}

// Board converts the document's columns into a board.
func (d *Document) Board() *board.Board {
	b := &board.Board{
		ProjectID:   d.Project.ID,
		ProjectName: d.Project.Name,
		Columns:     make([]board.Column, 0, len(d.Columns)),
	}
	for _, c := range d.Columns {
		b.Columns = append(b.Columns, board.Column{
			ID:      c.ID,
			Title:   c.Title,
			TaskIDs: append([]string{}, c.TaskIDs...),
		})
	}
	return b
}

// Validate checks that every task ID is unique and every placed ID names
// a known task, in addition to the board's own placement rules.
func (d *Document) Validate() error {
	known := make(map[string]struct{}, len(d.Tasks))
	for _, t := range d.Tasks {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: task without id", ErrInvalidSeed)
		}
		if _, dup := known[t.ID]; dup {
			return fmt.Errorf("%w: duplicate task %q", ErrInvalidSeed, t.ID)
		}
		known[t.ID] = struct{}{}
	}

	b := d.Board()
	if err := board.Validate(b); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	for _, id := range b.TaskIDs() {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: column references unknown task %q", ErrInvalidSeed, id)
		}
	}
	return nil
}

func (t Task) toTask() (*task.Task, error) {
	out := &task.Task{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Tags:           t.Tags,
		Assignee:       t.Assignee,
		DesignLink:     t.DesignLink,
		PreviewURL:     t.PreviewURL,
		CurrentVersion: t.CurrentVersion,
		VersionHistory: t.VersionHistory,
		Activities:     t.Activities,
	}
	if t.DueDate != "" {
		due, err := time.Parse(time.DateOnly, t.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: task %q due_date: %v", ErrInvalidSeed, t.ID, err)
		}
		out.DueDate = &due
	}
	return out, nil
}

// Apply validates doc and loads it into the task store and board layout.
func Apply(ctx context.Context, doc *Document, tasks *task.Service, boards *board.Service) error {
	if doc == nil {
		return ErrInvalidSeed
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	records := make([]*task.Task, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		rec, err := t.toTask()
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	for _, rec := range records {
		if err := tasks.Create(ctx, rec); err != nil {
			return fmt.Errorf("seeding task %s: %w", rec.ID, err)
		}
	}
	if err := boards.Initialize(ctx, doc.Board()); err != nil {
		return fmt.Errorf("seeding board: %w", err)
	}
	return nil
}
