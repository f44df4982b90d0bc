package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/domain/task"
	"github.com/rpggio/designboard/internal/memory"
	"github.com/rpggio/designboard/internal/seed"
	"github.com/stretchr/testify/require"
)

func services() (*task.Service, *board.Service) {
	return task.NewService(memory.NewTaskRepository(), nil), board.NewService(memory.NewBoardRepository(), nil)
}

func TestDefault_AppliesDemoBoard(t *testing.T) {
	ctx := context.Background()
	doc, err := seed.Default()
	require.NoError(t, err)

	tasks, boards := services()
	require.NoError(t, seed.Apply(ctx, doc, tasks, boards))

	b, err := boards.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "proj-001", b.ProjectID)
	require.Len(t, b.Columns, 5)
	require.Equal(t, []string{"T-05"}, b.Columns[0].TaskIDs)
	require.Equal(t, []string{"T-01", "T-02", "T-03"}, b.Columns[1].TaskIDs)
	require.Equal(t, []string{"T-04"}, b.Columns[2].TaskIDs)
	require.Empty(t, b.Columns[3].TaskIDs)
	require.Equal(t, []string{"T-06"}, b.Columns[4].TaskIDs)

	all, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)

	t1, err := tasks.Get(ctx, "T-01")
	require.NoError(t, err)
	require.Equal(t, "2023-12-15", t1.DueDate.Format("2006-01-02"))
	require.Len(t, t1.Activities, 1)
	require.Equal(t, "T-01", t1.Activities[0].TaskID)
	require.Equal(t, "#v1.0", t1.VersionHistory[0].Link)
	require.Equal(t, "Hsi", t1.Assignee.Name)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project: {id: p, name: Demo}
columns:
  - {id: a, title: A, task_ids: [X]}
  - {id: b, title: B}
tasks:
  - {id: X, title: Only task, status: A, tags: [ui, ui, api]}
`), 0o600))

	doc, err := seed.Load(path)
	require.NoError(t, err)

	ctx := context.Background()
	tasks, boards := services()
	require.NoError(t, seed.Apply(ctx, doc, tasks, boards))

	x, err := tasks.Get(ctx, "X")
	require.NoError(t, err)
	require.Equal(t, []string{"ui", "api"}, x.Tags)
	require.Nil(t, x.DueDate)

	_, err = seed.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApply_RejectsInconsistentDocuments(t *testing.T) {
	cases := map[string]string{
		"unknown task": `
columns: [{id: a, title: A, task_ids: [ghost]}]
tasks: [{id: X, title: X}]`,
		"duplicate placement": `
columns:
  - {id: a, title: A, task_ids: [X]}
  - {id: b, title: B, task_ids: [X]}
tasks: [{id: X, title: X}]`,
		"duplicate task": `
columns: [{id: a, title: A}]
tasks: [{id: X, title: X}, {id: X, title: Y}]`,
		"bad due date": `
columns: [{id: a, title: A}]
tasks: [{id: X, title: X, due_date: tomorrow}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := seed.Parse([]byte(body))
			require.NoError(t, err)

			tasks, boards := services()
			err = seed.Apply(context.Background(), doc, tasks, boards)
			require.ErrorIs(t, err, seed.ErrInvalidSeed)

			all, err := tasks.List(context.Background())
			require.NoError(t, err)
			require.Empty(t, all)
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := seed.Parse([]byte("colums: []\n"))
	require.ErrorIs(t, err, seed.ErrInvalidSeed)
}
