package sheet

import "errors"

// ErrSheetNotFound is returned when a workbook has no tab with the
// requested name. Callers treat it as a configuration error and abort.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is the tabular store the engine runs against. The hosted
// spreadsheet backend is out of scope; everything here goes through this
// interface so the core can run against the in-memory fake in tests and
// the sqlite workbook in the CLI.
type Workbook interface {
	// Sheet returns the named tab, or ErrSheetNotFound (wrapped) if absent.
	Sheet(name string) (Sheet, error)

	// EnsureSheet returns the named tab, creating it with the given header
	// row if it does not exist yet. Idempotent.
	EnsureSheet(name string, header []string) (Sheet, error)

	Close() error
}

// Sheet is one tab. Rows and columns are 1-indexed; row 1 is the header.
type Sheet interface {
	Name() string

	// Values returns the full used rectangle as a row-major grid.
	// Values()[0] is the header row. Every row is padded to LastCol cells.
	Values() ([][]string, error)

	// Cell returns the value at (row, col); empty string when out of range.
	Cell(row, col int) (string, error)

	UpdateCell(row, col int, value string) error
	ClearCell(row, col int) error

	// DeleteRow removes a row; rows below shift up by one.
	DeleteRow(row int) error

	LastRow() (int, error)
	LastCol() (int, error)

	// SetColumnValidation applies a list-membership rule to a column's data
	// range. Replaces any previous rule on that column. Idempotent.
	SetColumnValidation(col int, allowed []string) error
}
