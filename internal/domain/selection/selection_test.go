package selection_test

import (
	"context"
	"testing"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/selection"
	"github.com/rpggio/designboard/internal/domain/task"
	"github.com/rpggio/designboard/internal/memory"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*task.Service, *selection.Selection) {
	t.Helper()
	tasks := task.NewService(memory.NewTaskRepository(), nil)
	require.NoError(t, tasks.Create(context.Background(), &task.Task{ID: "T-01", Title: "Login", Status: "To Do"}))
	require.NoError(t, tasks.Create(context.Background(), &task.Task{ID: "T-02", Title: "Signup", Status: "To Do"}))

	sel := selection.New(tasks)
	tasks.Subscribe(sel.Refresh)
	return tasks, sel
}

func TestSelection_SelectAndClear(t *testing.T) {
	ctx := context.Background()
	_, sel := setup(t)

	_, ok := sel.Current()
	require.False(t, ok)

	selected, err := sel.Select(ctx, "T-01")
	require.NoError(t, err)
	require.Equal(t, "T-01", selected.ID)

	_, err = sel.Select(ctx, "missing")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
	current, ok := sel.Current()
	require.True(t, ok)
	require.Equal(t, "T-01", current.ID)

	sel.Clear()
	_, ok = sel.Current()
	require.False(t, ok)
}

func TestSelection_StaysFreshAfterMutation(t *testing.T) {
	ctx := context.Background()
	tasks, sel := setup(t)

	_, err := sel.Select(ctx, "T-01")
	require.NoError(t, err)

	_, err = tasks.AppendActivity(ctx, "T-01", activity.Input{Action: activity.ActionRecordedConsensus, Details: "agreed"})
	require.NoError(t, err)
	_, err = tasks.SetStatus(ctx, "T-01", "Done")
	require.NoError(t, err)

	stored, err := tasks.Get(ctx, "T-01")
	require.NoError(t, err)
	current, ok := sel.Current()
	require.True(t, ok)
	require.Equal(t, stored, current)
}

func TestSelection_IgnoresOtherTasksAndStaleRevisions(t *testing.T) {
	ctx := context.Background()
	tasks, sel := setup(t)

	_, err := sel.Select(ctx, "T-01")
	require.NoError(t, err)
	_, err = tasks.SetStatus(ctx, "T-02", "Done")
	require.NoError(t, err)

	current, _ := sel.Current()
	require.Equal(t, "T-01", current.ID)
	require.Equal(t, "To Do", current.Status)

	fresh, err := tasks.SetStatus(ctx, "T-01", "Done")
	require.NoError(t, err)
	stale := *fresh
	stale.Revision = 0
	stale.Status = "stale"
	sel.Refresh(stale)

	current, _ = sel.Current()
	require.Equal(t, "Done", current.Status)
}
