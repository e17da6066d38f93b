// Package guard keeps the decision_at timestamp consistent with the
// decision column, one edit notification at a time.
package guard

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"jobsheet-engine/internal/domain"
	"jobsheet-engine/internal/sheet"
)

// Edit is one cell-edit notification from the event source. Delivery is
// at-least-once and fields may be missing; anything malformed is a no-op.
type Edit struct {
	Sheet string `json:"sheet"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// TimestampLayout is how decision_at is written.
const TimestampLayout = "2006-01-02 15:04:05"

// Guard handles edits for one tab.
type Guard struct {
	wb  sheet.Workbook
	tab domain.TabSpec
	now func() time.Time
	log *slog.Logger
}

func New(wb sheet.Workbook, tab domain.TabSpec, now func() time.Time, log *slog.Logger) *Guard {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &Guard{wb: wb, tab: tab, now: now, log: log}
}

// HandleEdit applies the timestamp rule for one edit:
//   - decision set to APPLIED and decision_at empty: stamp now
//     (first-applied-wins: an existing stamp is left alone)
//   - decision set to anything else: clear decision_at
//
// Edits outside the tab, outside data rows, on other columns, or with a
// malformed payload do nothing. At most one timestamp write per call.
func (g *Guard) HandleEdit(ev Edit) error {
	if g.tab.DecisionAtCol == 0 {
		return nil
	}
	if ev.Sheet != g.tab.Name || ev.Row < g.tab.FirstDataRow || ev.Col < 1 {
		return nil
	}
	if ev.Col != g.tab.DecisionCol {
		return nil
	}

	s, err := g.wb.Sheet(g.tab.Name)
	if err != nil {
		return err
	}

	if strings.TrimSpace(ev.Value) == domain.DecisionApplied {
		cur, err := s.Cell(ev.Row, g.tab.DecisionAtCol)
		if err != nil {
			return fmt.Errorf("read decision_at at row %d: %w", ev.Row, err)
		}
		if strings.TrimSpace(cur) != "" {
			return nil
		}
		ts := g.now().UTC().Format(TimestampLayout)
		if err := s.UpdateCell(ev.Row, g.tab.DecisionAtCol, ts); err != nil {
			return fmt.Errorf("stamp row %d: %w", ev.Row, err)
		}
		g.log.Debug("stamped decision_at", "tab", g.tab.Name, "row", ev.Row, "at", ts)
		return nil
	}

	if err := s.ClearCell(ev.Row, g.tab.DecisionAtCol); err != nil {
		return fmt.Errorf("clear row %d: %w", ev.Row, err)
	}
	return nil
}
