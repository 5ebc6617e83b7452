package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func wf(id, created string) Workflow {
	return Workflow{ID: id, Name: "wf " + id, CreatedAt: ParseTimestamp(created)}
}

func TestReconcile_DuplicateKeepsFirstAndSortsNewestFirst(t *testing.T) {
	input := []Workflow{
		wf("a", "2024-01-01"),
		wf("a", "2024-01-02"),
		wf("b", "2024-01-03"),
	}

	got := Reconcile(input)

	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.Equal(t, "2024-01-01", got[1].CreatedAt.Raw)
}

func TestReconcile_Empty(t *testing.T) {
	require.Empty(t, Reconcile(nil))
	require.Empty(t, Reconcile([]Workflow{}))
}

func TestReconcile_DoesNotModifyInput(t *testing.T) {
	input := []Workflow{wf("a", "2024-01-01"), wf("b", "2024-02-01")}

	_ = Reconcile(input)

	require.Equal(t, "a", input[0].ID)
	require.Equal(t, "b", input[1].ID)
}

func TestReconcile_UndatedRecordsSortLast(t *testing.T) {
	input := []Workflow{
		wf("undated", ""),
		wf("old", "2023-06-01T10:00:00"),
		wf("garbage", "yesterday"),
		wf("new", "2024-06-01T10:00:00.123456"),
	}

	got := Reconcile(input)

	ids := make([]string, len(got))
	for i, w := range got {
		ids[i] = w.ID
	}
	require.Equal(t, []string{"new", "old", "undated", "garbage"}, ids)
}

func TestReconcile_EqualTimestampsKeepInputOrder(t *testing.T) {
	input := []Workflow{
		wf("x", "2024-03-01"),
		wf("y", "2024-03-01"),
		wf("z", "2024-03-01"),
	}

	got := Reconcile(input)

	require.Equal(t, "x", got[0].ID)
	require.Equal(t, "y", got[1].ID)
	require.Equal(t, "z", got[2].ID)
}

// ============================================================================
// Property-Based Tests
// ============================================================================

func workflowsGen() *rapid.Generator[[]Workflow] {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return rapid.Custom(func(t *rapid.T) []Workflow {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		out := make([]Workflow, n)
		for i := range out {
			id := rapid.SampledFrom([]string{"a", "b", "c", "d", "e", "f"}).Draw(t, fmt.Sprintf("id-%d", i))
			var ts Timestamp
			if rapid.IntRange(0, 9).Draw(t, fmt.Sprintf("dated-%d", i)) > 0 {
				days := rapid.IntRange(0, 10).Draw(t, fmt.Sprintf("days-%d", i))
				at := base.AddDate(0, 0, days)
				ts = Timestamp{Time: at, Raw: at.Format(time.RFC3339)}
			}
			out[i] = Workflow{ID: id, Name: fmt.Sprintf("record-%d", i), CreatedAt: ts}
		}
		return out
	})
}

// TestProperty_ReconcileKeepsFirstPerID verifies each id appears once and
// carries the record from its first occurrence.
func TestProperty_ReconcileKeepsFirstPerID(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := workflowsGen().Draw(t, "input")

		first := make(map[string]string)
		for _, w := range input {
			if _, ok := first[w.ID]; !ok {
				first[w.ID] = w.Name
			}
		}

		got := Reconcile(input)

		if len(got) != len(first) {
			t.Fatalf("got %d records, want %d distinct ids", len(got), len(first))
		}
		seen := make(map[string]bool)
		for _, w := range got {
			if seen[w.ID] {
				t.Fatalf("id %q appears more than once", w.ID)
			}
			seen[w.ID] = true
			if first[w.ID] != w.Name {
				t.Fatalf("id %q kept %q, want first occurrence %q", w.ID, w.Name, first[w.ID])
			}
		}
	})
}

// TestProperty_ReconcileOrdersNewestFirst verifies the output is
// non-increasing by creation time with undated records at the end.
func TestProperty_ReconcileOrdersNewestFirst(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		got := Reconcile(workflowsGen().Draw(t, "input"))

		for i := 1; i < len(got); i++ {
			prev, cur := got[i-1].CreatedAt, got[i].CreatedAt
			if prev.IsZero() && !cur.IsZero() {
				t.Fatalf("dated record %d follows undated record", i)
			}
			if !prev.IsZero() && !cur.IsZero() && cur.After(prev.Time) {
				t.Fatalf("record %d (%s) is newer than record %d (%s)", i, cur.Raw, i-1, prev.Raw)
			}
		}
	})
}

// TestProperty_ReconcileIdempotent verifies reconciling twice changes nothing.
func TestProperty_ReconcileIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		once := Reconcile(workflowsGen().Draw(t, "input"))
		twice := Reconcile(once)
		if len(once) != len(twice) {
			t.Fatalf("length changed: %d -> %d", len(once), len(twice))
		}
		for i := range once {
			if once[i].ID != twice[i].ID || once[i].Name != twice[i].Name {
				t.Fatalf("position %d changed: %q -> %q", i, once[i].ID, twice[i].ID)
			}
		}
	})
}
