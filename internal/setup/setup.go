// Package setup holds the idempotent workbook initialization: tabs with
// their headers, plus the decision-vocabulary dropdown rule.
package setup

import (
	"fmt"

	"jobsheet-engine/internal/domain"
	"jobsheet-engine/internal/sheet"
)

// Init makes sure both tabs exist with their header rows and that every
// decision column carries the list-membership validation. Safe to re-run.
func Init(wb sheet.Workbook, jobs, today domain.TabSpec) error {
	js, err := wb.EnsureSheet(jobs.Name, domain.JobsHeader())
	if err != nil {
		return fmt.Errorf("ensure %q: %w", jobs.Name, err)
	}
	if err := js.SetColumnValidation(jobs.DecisionCol, domain.Decisions()); err != nil {
		return fmt.Errorf("validation on %q: %w", jobs.Name, err)
	}

	ts, err := wb.EnsureSheet(today.Name, domain.TodayHeader())
	if err != nil {
		return fmt.Errorf("ensure %q: %w", today.Name, err)
	}
	if err := ts.SetColumnValidation(today.DecisionCol, domain.Decisions()); err != nil {
		return fmt.Errorf("validation on %q: %w", today.Name, err)
	}
	return nil
}
