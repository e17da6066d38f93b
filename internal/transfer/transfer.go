// Package transfer moves staged rows from the today tab into the primary
// tab, remapping column order and deduping by canonical URL.
package transfer

import (
	"fmt"
	"log/slog"
	"strings"

	"jobsheet-engine/internal/domain"
	"jobsheet-engine/internal/sheet"
	"jobsheet-engine/internal/urlcanon"
)

// Today tab column positions (1-indexed), fixed by the tab schema:
// source, labels, title, company, location, date_added, url, decision, notes
const (
	todayCols   = 9
	todayURLCol = 7
	jobsURLCol  = 6
)

// Report is the outcome of one transfer run.
type Report struct {
	Moved   int `json:"moved"`
	Skipped int `json:"skipped"`
}

type Transfer struct {
	wb   sheet.Workbook
	from domain.TabSpec
	to   domain.TabSpec
	log  *slog.Logger
}

func New(wb sheet.Workbook, from, to domain.TabSpec, log *slog.Logger) *Transfer {
	if log == nil {
		log = slog.Default()
	}
	return &Transfer{wb: wb, from: from, to: to, log: log}
}

// Run copies every data row from the today tab into the primary tab, then
// clears the today tab (bottom-up, so indices stay valid). Rows whose
// canonical URL already exists in the primary tab are skipped. An empty
// source tab is a zero-count no-op.
func (t *Transfer) Run() (Report, error) {
	var rep Report

	src, err := t.wb.Sheet(t.from.Name)
	if err != nil {
		return rep, err
	}
	dst, err := t.wb.Sheet(t.to.Name)
	if err != nil {
		return rep, err
	}

	srcGrid, err := src.Values()
	if err != nil {
		return rep, fmt.Errorf("read %q: %w", t.from.Name, err)
	}
	if len(srcGrid) < t.from.FirstDataRow {
		return rep, nil
	}

	seen, err := t.knownURLs(dst)
	if err != nil {
		return rep, err
	}

	nextRow, err := dst.LastRow()
	if err != nil {
		return rep, err
	}
	nextRow++

	for i := t.from.FirstDataRow; i <= len(srcGrid); i++ {
		row := pad(srcGrid[i-1], todayCols)
		if blank(row) {
			continue
		}

		key := urlcanon.Canonicalize(row[todayURLCol-1])
		if key != "" && seen[key] {
			rep.Skipped++
			continue
		}

		mapped := toJobsOrder(row)
		for col, v := range mapped {
			if v == "" {
				continue
			}
			if err := dst.UpdateCell(nextRow, col+1, v); err != nil {
				return rep, fmt.Errorf("append to %q row %d: %w", t.to.Name, nextRow, err)
			}
		}
		if key != "" {
			seen[key] = true
		}
		nextRow++
		rep.Moved++
	}

	if rep.Moved > 0 {
		if err := t.clearSource(src, len(srcGrid)); err != nil {
			return rep, err
		}
	}

	t.log.Info("transfer done", "from", t.from.Name, "to", t.to.Name,
		"moved", rep.Moved, "skipped", rep.Skipped)
	return rep, nil
}

func (t *Transfer) knownURLs(dst sheet.Sheet) (map[string]bool, error) {
	grid, err := dst.Values()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", t.to.Name, err)
	}
	seen := map[string]bool{}
	for i := t.to.FirstDataRow; i <= len(grid); i++ {
		row := grid[i-1]
		if jobsURLCol > len(row) {
			continue
		}
		if key := urlcanon.Canonicalize(row[jobsURLCol-1]); key != "" {
			seen[key] = true
		}
	}
	return seen, nil
}

func (t *Transfer) clearSource(src sheet.Sheet, lastRow int) error {
	for r := lastRow; r >= t.from.FirstDataRow; r-- {
		if err := src.DeleteRow(r); err != nil {
			return fmt.Errorf("clear %q row %d: %w", t.from.Name, r, err)
		}
	}
	return nil
}

// toJobsOrder remaps a today-order row into jobs order, with an empty
// decision_at slot.
func toJobsOrder(r []string) []string {
	source, labels, title, company, location, dateAdded, url, decision, notes :=
		r[0], r[1], r[2], r[3], r[4], r[5], r[6], r[7], r[8]
	return []string{dateAdded, source, title, company, location, url, labels, decision, "", notes}
}

func pad(r []string, n int) []string {
	out := make([]string, n)
	copy(out, r)
	return out
}

func blank(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
