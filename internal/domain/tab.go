package domain

// TabSpec pins down where the interesting columns live in one tab.
// Columns are 1-indexed; DecisionAtCol == 0 means the tab has no
// timestamp column. Row 1 is always the header.
type TabSpec struct {
	Name          string
	TitleCol      int
	DecisionCol   int
	DecisionAtCol int
	FirstDataRow  int
}

// JobsTab is the primary tab layout:
// date_added, source, title, company, location, url, labels, decision, decision_at, notes
func JobsTab() TabSpec {
	return TabSpec{
		Name:          "Jobs",
		TitleCol:      3,
		DecisionCol:   8,
		DecisionAtCol: 9,
		FirstDataRow:  2,
	}
}

// TodayTab is the staging tab the scrapers append to:
// source, labels, title, company, location, date_added, url, decision, notes
func TodayTab() TabSpec {
	return TabSpec{
		Name:         "Jobs_Today",
		TitleCol:     3,
		DecisionCol:  8,
		FirstDataRow: 2,
	}
}

// JobsHeader is the header row for the primary tab.
func JobsHeader() []string {
	return []string{"date_added", "source", "title", "company", "location", "url", "labels", "decision", "decision_at", "notes"}
}

// TodayHeader is the header row for the staging tab.
func TodayHeader() []string {
	return []string{"source", "labels", "title", "company", "location", "date_added", "url", "decision", "notes"}
}
