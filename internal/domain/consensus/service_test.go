package consensus_test

import (
	"context"
	"testing"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/consensus"
	"github.com/rpggio/designboard/internal/domain/task"
	"github.com/rpggio/designboard/internal/memory"
	"github.com/stretchr/testify/require"
)

var me = activity.Actor{Name: "Me (Current User)", Avatar: "https://i.pravatar.cc/150?u=me"}

func newService(t *testing.T) (*consensus.Service, *task.Service) {
	t.Helper()
	tasks := task.NewService(memory.NewTaskRepository(), nil)
	require.NoError(t, tasks.Create(context.Background(), &task.Task{ID: "T-01", Title: "Login page"}))
	return consensus.NewService(tasks, me, nil), tasks
}

func TestRecord_AppendsTrimmedEntry(t *testing.T) {
	ctx := context.Background()
	svc, tasks := newService(t)

	updated, err := svc.Record(ctx, "T-01", "  Ship the blue button  \n")
	require.NoError(t, err)
	require.Len(t, updated.Activities, 1)

	entry := updated.Activities[0]
	require.Equal(t, activity.ActionRecordedConsensus, entry.Action)
	require.Equal(t, "Ship the blue button", entry.Details)
	require.Equal(t, me.Name, entry.UserName)
	require.Equal(t, me.Avatar, entry.UserAvatar)
	require.Equal(t, "T-01", entry.TaskID)

	stored, err := tasks.Get(ctx, "T-01")
	require.NoError(t, err)
	require.Equal(t, updated, stored)
}

func TestRecord_RejectsBlankContent(t *testing.T) {
	ctx := context.Background()
	svc, tasks := newService(t)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Record(ctx, "T-01", content)
		require.ErrorIs(t, err, consensus.ErrEmptyConsensus)
	}

	stored, err := tasks.Get(ctx, "T-01")
	require.NoError(t, err)
	require.Empty(t, stored.Activities)
	require.Zero(t, stored.Revision)
}

func TestRecord_UnknownTask(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Record(context.Background(), "T-99", "agreed")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}
