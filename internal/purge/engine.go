package purge

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"jobsheet-engine/internal/domain"
	"jobsheet-engine/internal/sheet"
)

// Options control one engine run.
type Options struct {
	// DryRun reports matches without touching the sheet. On by default;
	// callers must flip it explicitly to mutate.
	DryRun bool

	// PreviewLimit bounds how many matches per set make it into the
	// report preview (scan order). <= 0 means DefaultPreviewLimit.
	PreviewLimit int
}

const DefaultPreviewLimit = 30

// Match is one flagged row, captured during the scan. Row indices are
// absolute positions in the snapshot the scan read.
type Match struct {
	Row   int    `json:"row"`
	Title string `json:"title"`
}

// Report is the outcome of one run.
type Report struct {
	Tab     string `json:"tab"`
	DryRun  bool   `json:"dry_run"`
	Scanned int    `json:"scanned"`

	SeniorMatched int `json:"senior_matched"`
	DeleteMatched int `json:"delete_matched"`

	SeniorPreview []Match `json:"senior_preview,omitempty"`
	DeletePreview []Match `json:"delete_preview,omitempty"`

	Marked  int `json:"marked"`
	Deleted int `json:"deleted"`
}

// Engine scans a tab's titles and applies the two-phase cleanup:
// conditional OVERSENIOR marking, then bottom-up deletion.
type Engine struct {
	wb     sheet.Workbook
	tab    domain.TabSpec
	senior *Matcher
	delete *Matcher
	opts   Options
	log    *slog.Logger
}

func NewEngine(wb sheet.Workbook, tab domain.TabSpec, senior, delete *Matcher, opts Options, log *slog.Logger) *Engine {
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = DefaultPreviewLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{wb: wb, tab: tab, senior: senior, delete: delete, opts: opts, log: log}
}

// Run executes one scan-then-apply cycle. The scan reads a single
// snapshot; the apply phase acts on row indices captured from it, so the
// store must not be mutated externally in between (single-invoker model).
func (e *Engine) Run(ctx context.Context) (Report, error) {
	rep := Report{Tab: e.tab.Name, DryRun: e.opts.DryRun}

	s, err := e.wb.Sheet(e.tab.Name)
	if err != nil {
		return rep, err
	}

	grid, err := s.Values()
	if err != nil {
		return rep, fmt.Errorf("read %q: %w", e.tab.Name, err)
	}

	seniorSet, deleteSet := e.scan(grid, &rep)
	rep.SeniorMatched = len(seniorSet)
	rep.DeleteMatched = len(deleteSet)
	rep.SeniorPreview = preview(seniorSet, e.opts.PreviewLimit)
	rep.DeletePreview = preview(deleteSet, e.opts.PreviewLimit)

	if e.opts.DryRun {
		e.log.Info("purge dry run",
			"tab", e.tab.Name,
			"scanned", rep.Scanned,
			"senior", rep.SeniorMatched,
			"delete", rep.DeleteMatched)
		return rep, nil
	}

	if err := ctx.Err(); err != nil {
		return rep, err
	}

	marked, err := e.markSenior(s, seniorSet)
	rep.Marked = marked
	if err != nil {
		return rep, err
	}

	deleted, err := e.deleteRows(s, deleteSet)
	rep.Deleted = deleted
	if err != nil {
		return rep, err
	}

	e.log.Info("purge applied",
		"tab", e.tab.Name,
		"scanned", rep.Scanned,
		"marked", rep.Marked,
		"deleted", rep.Deleted)
	return rep, nil
}

// scan partitions data rows into the two disjoint match sets. Senior is
// tested first and short-circuits the delete test, so a title matching
// both lists always lands in the senior set.
func (e *Engine) scan(grid [][]string, rep *Report) (senior, del []Match) {
	for i := e.tab.FirstDataRow; i <= len(grid); i++ {
		row := grid[i-1]
		title := ""
		if e.tab.TitleCol <= len(row) {
			title = strings.TrimSpace(row[e.tab.TitleCol-1])
		}
		if title == "" {
			continue
		}
		rep.Scanned++

		if e.senior.Match(title) {
			senior = append(senior, Match{Row: i, Title: title})
		} else if e.delete.Match(title) {
			del = append(del, Match{Row: i, Title: title})
		}
	}
	return senior, del
}

// markSenior writes OVERSENIOR only over empty/NEW decisions, so a human
// call is never overwritten. Re-running over already-marked rows is a no-op.
func (e *Engine) markSenior(s sheet.Sheet, matches []Match) (int, error) {
	marked := 0
	for _, m := range matches {
		cur, err := s.Cell(m.Row, e.tab.DecisionCol)
		if err != nil {
			return marked, fmt.Errorf("read decision at row %d: %w", m.Row, err)
		}
		if !domain.Unset(strings.TrimSpace(cur)) {
			continue
		}
		if err := s.UpdateCell(m.Row, e.tab.DecisionCol, domain.DecisionOverSenior); err != nil {
			return marked, fmt.Errorf("mark row %d: %w", m.Row, err)
		}
		marked++
	}
	return marked, nil
}

// deleteRows removes matched rows bottom-up. Descending order is
// mandatory: each delete shifts everything below it up by one, so indices
// captured from the snapshot stay valid only for rows above the cut.
func (e *Engine) deleteRows(s sheet.Sheet, matches []Match) (int, error) {
	rows := make([]int, len(matches))
	for i, m := range matches {
		rows[i] = m.Row
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rows)))

	deleted := 0
	for _, r := range rows {
		if err := s.DeleteRow(r); err != nil {
			return deleted, fmt.Errorf("delete row %d: %w", r, err)
		}
		deleted++
	}
	return deleted, nil
}

func preview(matches []Match, limit int) []Match {
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return append([]Match(nil), matches...)
}
