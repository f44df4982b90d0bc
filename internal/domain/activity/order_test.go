package activity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestMostRecentFirst_SortsByTimestampNotInsertion(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []activity.Activity{
		{ID: "a", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "b", CreatedAt: base},
		{ID: "c", CreatedAt: base.Add(time.Minute)},
	}

	ordered := activity.MostRecentFirst(entries)
	require.Equal(t, []string{"a", "c", "b"}, ids(ordered))
	require.Equal(t, "a", entries[0].ID)
	require.Equal(t, "b", entries[1].ID)
}

func TestMostRecentFirst_TiesPreferLaterInsertion(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []activity.Activity{
		{ID: "first", CreatedAt: at},
		{ID: "second", CreatedAt: at},
	}

	require.Equal(t, []string{"second", "first"}, ids(activity.MostRecentFirst(entries)))
}

func TestLatestAndSummary(t *testing.T) {
	_, ok := activity.Latest(nil)
	require.False(t, ok)

	at := time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC)
	latest, ok := activity.Latest([]activity.Activity{
		{UserName: "Kim", Action: activity.ActionProposedChange, CreatedAt: at},
		{UserName: "Lee", Action: activity.ActionRecordedConsensus, CreatedAt: at.Add(-time.Hour)},
	})
	require.True(t, ok)
	require.Equal(t, "Kim proposed a design change (14:05)", activity.Summary(latest))
}

func TestList_FilterAndPage(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []activity.Activity{
		{ID: "1", Action: activity.ActionRecordedConsensus, CreatedAt: base},
		{ID: "2", Action: activity.ActionProposedChange, CreatedAt: base.Add(time.Minute)},
		{ID: "3", Action: activity.ActionApprovedChange, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "4", Action: activity.ActionRecordedConsensus, CreatedAt: base.Add(3 * time.Minute)},
	}

	require.Equal(t, []string{"4", "1"}, ids(activity.List(entries, activity.ListOptions{
		Actions: []string{activity.ActionRecordedConsensus},
	})))
	require.Equal(t, []string{"3", "2"}, ids(activity.List(entries, activity.ListOptions{Offset: 1, Limit: 2})))
	require.Empty(t, activity.List(entries, activity.ListOptions{Offset: 10}))
	require.Len(t, entries, 4)
}

func TestNew_AssignsUniqueIDs(t *testing.T) {
	now := time.Now()
	in := activity.Input{Actor: activity.Actor{Name: "Kim"}, Action: activity.ActionRecordedConsensus, Details: "ok"}

	a := activity.New("T-01", in, now)
	b := activity.New("T-01", in, now)

	require.NotEqual(t, a.ID, b.ID)
	require.True(t, strings.HasPrefix(a.ID, "act-T-01-"))
	require.Equal(t, "T-01", a.TaskID)
	require.Equal(t, "Kim", a.UserName)
	require.Equal(t, now, a.CreatedAt)
}

func ids(entries []activity.Activity) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
