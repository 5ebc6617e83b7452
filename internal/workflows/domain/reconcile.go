package domain

import "sort"

// EmptyPlaceholder is shown in place of the list when there are no workflows.
const EmptyPlaceholder = "No workflows found. Create your first workflow!"

// Reconcile returns the display order for records: one record per id (the
// first occurrence in input order wins) sorted by creation time, newest
// first. Records with equal or missing timestamps keep their relative input
// order, and undated records come last. The input slice is not modified.
func Reconcile(records []Workflow) []Workflow {
	seen := make(map[string]struct{}, len(records))
	out := make([]Workflow, 0, len(records))
	for _, w := range records {
		if _, dup := seen[w.ID]; dup {
			continue
		}
		seen[w.ID] = struct{}{}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt)
	})
	return out
}

// newer reports whether a sorts strictly before b.
func newer(a, b Timestamp) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	}
	return a.After(b.Time)
}
