package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"jobsheet-engine/internal/domain"
	"jobsheet-engine/internal/sheet"
)

func newGuard(t *testing.T) (*Guard, *sheet.MemorySheet, *fakeClock) {
	t.Helper()
	wb := sheet.NewMemoryWorkbook()
	ms := wb.AddSheet("Jobs", [][]string{
		domain.JobsHeader(),
		{"2025-08-01", "remotive", "Backend Developer", "Acme", "Tunis", "https://example.com/1", "", "", "", ""},
	})
	clock := &fakeClock{at: time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC)}
	return New(wb, domain.JobsTab(), clock.now, nil), ms, clock
}

type fakeClock struct{ at time.Time }

func (c *fakeClock) now() time.Time { return c.at }

func (c *fakeClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func decisionAt(t *testing.T, ms *sheet.MemorySheet) string {
	t.Helper()
	v, err := ms.Cell(2, 9)
	require.NoError(t, err)
	return v
}

func TestAppliedStampsTimestamp(t *testing.T) {
	g, ms, _ := newGuard(t)

	err := g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: "APPLIED"})
	require.NoError(t, err)
	require.Equal(t, "2025-08-20 09:30:00", decisionAt(t, ms))
}

func TestFirstAppliedWins(t *testing.T) {
	g, ms, clock := newGuard(t)

	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: "APPLIED"}))
	first := decisionAt(t, ms)

	clock.advance(48 * time.Hour)
	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: "APPLIED"}))
	require.Equal(t, first, decisionAt(t, ms), "re-applying must keep the first timestamp")
}

func TestNonAppliedClears(t *testing.T) {
	g, ms, _ := newGuard(t)

	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: "APPLIED"}))
	require.NotEmpty(t, decisionAt(t, ms))

	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: "REJECTED"}))
	require.Empty(t, decisionAt(t, ms))
}

func TestEmptyValueClears(t *testing.T) {
	g, ms, _ := newGuard(t)

	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: "APPLIED"}))
	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: ""}))
	require.Empty(t, decisionAt(t, ms))
}

func TestAppliedValueIsTrimmed(t *testing.T) {
	g, ms, _ := newGuard(t)

	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: "  APPLIED  "}))
	require.NotEmpty(t, decisionAt(t, ms))
}

func TestEditSequenceKeepsInvariant(t *testing.T) {
	// decision_at empty <=> last edit's value != APPLIED
	g, ms, _ := newGuard(t)

	seq := []struct {
		value     string
		wantEmpty bool
	}{
		{"SAVED", true},
		{"APPLIED", false},
		{"APPLIED", false},
		{"ARCHIVED", true},
		{"APPLIED", false},
		{"", true},
	}
	for i, step := range seq {
		require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs", Row: 2, Col: 8, Value: step.value}))
		if step.wantEmpty {
			require.Empty(t, decisionAt(t, ms), "step %d (%q)", i, step.value)
		} else {
			require.NotEmpty(t, decisionAt(t, ms), "step %d (%q)", i, step.value)
		}
	}
}

func TestNoOpGuards(t *testing.T) {
	tests := []struct {
		name string
		ev   Edit
	}{
		{"other tab", Edit{Sheet: "Jobs_Today", Row: 2, Col: 8, Value: "APPLIED"}},
		{"header row", Edit{Sheet: "Jobs", Row: 1, Col: 8, Value: "APPLIED"}},
		{"other column", Edit{Sheet: "Jobs", Row: 2, Col: 3, Value: "APPLIED"}},
		{"missing sheet field", Edit{Row: 2, Col: 8, Value: "APPLIED"}},
		{"zero row", Edit{Sheet: "Jobs", Col: 8, Value: "APPLIED"}},
		{"zero col", Edit{Sheet: "Jobs", Row: 2, Value: "APPLIED"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ms, _ := newGuard(t)
			require.NoError(t, g.HandleEdit(tt.ev))
			require.Empty(t, decisionAt(t, ms))
		})
	}
}

func TestTabWithoutTimestampColumnIsNoOp(t *testing.T) {
	wb := sheet.NewMemoryWorkbook()
	ms := wb.AddSheet("Jobs_Today", [][]string{
		domain.TodayHeader(),
		{"remotive", "", "Backend Developer", "Acme", "Tunis", "2025-08-01", "https://example.com/1", "", ""},
	})
	g := New(wb, domain.TodayTab(), nil, nil)

	require.NoError(t, g.HandleEdit(Edit{Sheet: "Jobs_Today", Row: 2, Col: 8, Value: "APPLIED"}))
	grid, err := ms.Values()
	require.NoError(t, err)
	require.Len(t, grid[1], 9, "no timestamp column must appear")
}
