package activity

// ListOptions provides filtering options for listing a task's activity.
type ListOptions struct {
	Actions []string
	Limit   int
	Offset  int
}

// List returns entries most recent first, filtered and paged by opts.
func List(entries []Activity, opts ListOptions) []Activity {
	ordered := MostRecentFirst(entries)

	if len(opts.Actions) > 0 {
		allowed := make(map[string]struct{}, len(opts.Actions))
		for _, a := range opts.Actions {
			allowed[a] = struct{}{}
		}
		filtered := ordered[:0]
		for _, entry := range ordered {
			if _, ok := allowed[entry.Action]; ok {
				filtered = append(filtered, entry)
			}
		}
		ordered = filtered
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(ordered) {
			return []Activity{}
		}
		ordered = ordered[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(ordered) {
		ordered = ordered[:opts.Limit]
	}
	return ordered
}
