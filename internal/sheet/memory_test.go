package sheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryWorkbookSheetLookup(t *testing.T) {
	wb := NewMemoryWorkbook()
	wb.AddSheet("Jobs", [][]string{{"title"}})

	s, err := wb.Sheet("Jobs")
	require.NoError(t, err)
	require.Equal(t, "Jobs", s.Name())

	_, err = wb.Sheet("Nope")
	require.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestMemoryEnsureSheetIdempotent(t *testing.T) {
	wb := NewMemoryWorkbook()

	s, err := wb.EnsureSheet("Jobs", []string{"a", "b"})
	require.NoError(t, err)
	last, err := s.LastRow()
	require.NoError(t, err)
	require.Equal(t, 1, last)

	again, err := wb.EnsureSheet("Jobs", []string{"ignored"})
	require.NoError(t, err)
	require.Same(t, s, again)
	v, err := again.Cell(1, 1)
	require.NoError(t, err)
	require.Equal(t, "a", v, "existing header must not be overwritten")
}

func TestMemoryDeleteRowShiftsUp(t *testing.T) {
	wb := NewMemoryWorkbook()
	s := wb.AddSheet("Jobs", [][]string{
		{"header"},
		{"row2"},
		{"row3"},
		{"row4"},
	})

	require.NoError(t, s.DeleteRow(3))

	v, err := s.Cell(3, 1)
	require.NoError(t, err)
	require.Equal(t, "row4", v)

	last, err := s.LastRow()
	require.NoError(t, err)
	require.Equal(t, 3, last)

	require.Error(t, s.DeleteRow(99))
}

func TestMemoryUpdateCellExtendsGrid(t *testing.T) {
	wb := NewMemoryWorkbook()
	s := wb.AddSheet("Jobs", [][]string{{"header"}})

	require.NoError(t, s.UpdateCell(5, 3, "x"))
	v, err := s.Cell(5, 3)
	require.NoError(t, err)
	require.Equal(t, "x", v)

	last, err := s.LastRow()
	require.NoError(t, err)
	require.Equal(t, 5, last)
	cols, err := s.LastCol()
	require.NoError(t, err)
	require.Equal(t, 3, cols)
}

func TestMemoryValuesPadsRows(t *testing.T) {
	wb := NewMemoryWorkbook()
	s := wb.AddSheet("Jobs", [][]string{
		{"a", "b", "c"},
		{"d"},
	})

	grid, err := s.Values()
	require.NoError(t, err)
	require.Len(t, grid, 2)
	require.Equal(t, []string{"a", "b", "c"}, grid[0])
	require.Equal(t, []string{"d", "", ""}, grid[1])
}

func TestMemoryClearCell(t *testing.T) {
	wb := NewMemoryWorkbook()
	s := wb.AddSheet("Jobs", [][]string{{"a", "b"}})

	require.NoError(t, s.ClearCell(1, 2))
	v, err := s.Cell(1, 2)
	require.NoError(t, err)
	require.Empty(t, v)

	// out of range clears are no-ops
	require.NoError(t, s.ClearCell(9, 9))
}

func TestMemoryColumnValidation(t *testing.T) {
	wb := NewMemoryWorkbook()
	s := wb.AddSheet("Jobs", [][]string{{"h"}})

	require.NoError(t, s.SetColumnValidation(8, []string{"NEW", "APPLIED"}))
	require.Equal(t, []string{"NEW", "APPLIED"}, s.Validation(8))

	require.NoError(t, s.SetColumnValidation(8, []string{"NEW"}))
	require.Equal(t, []string{"NEW"}, s.Validation(8), "re-applying replaces the rule")
}
