package activity

import (
	"fmt"
	"sort"
)

// MostRecentFirst returns a copy of entries ordered by CreatedAt, newest
// first. Insertion order breaks ties, later insertions first.
func MostRecentFirst(entries []Activity) []Activity {
	out := make([]Activity, len(entries))
	for i := range entries {
		out[len(entries)-1-i] = entries[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Latest returns the most recent entry by timestamp.
func Latest(entries []Activity) (Activity, bool) {
	if len(entries) == 0 {
		return Activity{}, false
	}
	return MostRecentFirst(entries)[0], true
}

// Summary renders a one-line card caption such as "Kim proposed a design change (14:05)".
func Summary(a Activity) string {
	return fmt.Sprintf("%s %s (%s)", a.UserName, a.Action, a.CreatedAt.Format("15:04"))
}
