package sheet

import "fmt"

// MemoryWorkbook is the in-memory store used in tests and as the reference
// semantics for row shifting on delete.
type MemoryWorkbook struct {
	sheets []*MemorySheet
}

func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{}
}

func (wb *MemoryWorkbook) Sheet(name string) (Sheet, error) {
	for _, s := range wb.sheets {
		if s.name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

func (wb *MemoryWorkbook) EnsureSheet(name string, header []string) (Sheet, error) {
	if s, err := wb.Sheet(name); err == nil {
		return s, nil
	}
	s := &MemorySheet{name: name}
	if len(header) > 0 {
		s.grid = append(s.grid, append([]string(nil), header...))
	}
	wb.sheets = append(wb.sheets, s)
	return s, nil
}

func (wb *MemoryWorkbook) Close() error { return nil }

// AddSheet seeds a tab with a full grid (header row first). Test helper.
func (wb *MemoryWorkbook) AddSheet(name string, grid [][]string) *MemorySheet {
	s := &MemorySheet{name: name}
	for _, row := range grid {
		s.grid = append(s.grid, append([]string(nil), row...))
	}
	wb.sheets = append(wb.sheets, s)
	return s
}

type MemorySheet struct {
	name        string
	grid        [][]string
	validations map[int][]string
}

func (s *MemorySheet) Name() string { return s.name }

func (s *MemorySheet) Values() ([][]string, error) {
	cols := s.lastCol()
	out := make([][]string, len(s.grid))
	for i, row := range s.grid {
		r := make([]string, cols)
		copy(r, row)
		out[i] = r
	}
	return out, nil
}

func (s *MemorySheet) Cell(row, col int) (string, error) {
	if row < 1 || col < 1 || row > len(s.grid) {
		return "", nil
	}
	r := s.grid[row-1]
	if col > len(r) {
		return "", nil
	}
	return r[col-1], nil
}

func (s *MemorySheet) UpdateCell(row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("update cell: bad address (%d,%d)", row, col)
	}
	for len(s.grid) < row {
		s.grid = append(s.grid, nil)
	}
	r := s.grid[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	s.grid[row-1] = r
	return nil
}

func (s *MemorySheet) ClearCell(row, col int) error {
	if row < 1 || col < 1 || row > len(s.grid) {
		return nil
	}
	r := s.grid[row-1]
	if col <= len(r) {
		r[col-1] = ""
	}
	return nil
}

func (s *MemorySheet) DeleteRow(row int) error {
	if row < 1 || row > len(s.grid) {
		return fmt.Errorf("delete row: no row %d", row)
	}
	s.grid = append(s.grid[:row-1], s.grid[row:]...)
	return nil
}

func (s *MemorySheet) LastRow() (int, error) { return len(s.grid), nil }

func (s *MemorySheet) LastCol() (int, error) { return s.lastCol(), nil }

func (s *MemorySheet) lastCol() int {
	max := 0
	for _, row := range s.grid {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func (s *MemorySheet) SetColumnValidation(col int, allowed []string) error {
	if col < 1 {
		return fmt.Errorf("set validation: bad column %d", col)
	}
	if s.validations == nil {
		s.validations = map[int][]string{}
	}
	s.validations[col] = append([]string(nil), allowed...)
	return nil
}

// Validation returns the rule applied to a column, if any. Test helper.
func (s *MemorySheet) Validation(col int) []string { return s.validations[col] }
