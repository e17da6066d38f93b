package sheet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestWorkbook(t *testing.T) (*SQLiteWorkbook, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	wb, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb, path
}

func TestSQLiteEnsureAndLookup(t *testing.T) {
	wb, _ := openTestWorkbook(t)

	_, err := wb.Sheet("Jobs")
	require.True(t, errors.Is(err, ErrSheetNotFound))

	s, err := wb.EnsureSheet("Jobs", []string{"title", "decision"})
	require.NoError(t, err)
	v, err := s.Cell(1, 1)
	require.NoError(t, err)
	require.Equal(t, "title", v)

	again, err := wb.EnsureSheet("Jobs", []string{"other"})
	require.NoError(t, err)
	v, err = again.Cell(1, 1)
	require.NoError(t, err)
	require.Equal(t, "title", v, "existing header must survive re-init")
}

func TestSQLiteUpdateAndValues(t *testing.T) {
	wb, _ := openTestWorkbook(t)
	s, err := wb.EnsureSheet("Jobs", []string{"a", "b"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateCell(2, 3, "x"))
	require.NoError(t, s.UpdateCell(3, 1, "y"))

	grid, err := s.Values()
	require.NoError(t, err)
	require.Len(t, grid, 3)
	require.Equal(t, []string{"a", "b", ""}, grid[0])
	require.Equal(t, []string{"", "", "x"}, grid[1])
	require.Equal(t, []string{"y", "", ""}, grid[2])

	last, err := s.LastRow()
	require.NoError(t, err)
	require.Equal(t, 3, last)
	cols, err := s.LastCol()
	require.NoError(t, err)
	require.Equal(t, 3, cols)
}

func TestSQLiteDeleteRowShiftsUp(t *testing.T) {
	wb, _ := openTestWorkbook(t)
	s, err := wb.EnsureSheet("Jobs", []string{"h"})
	require.NoError(t, err)

	for i := 2; i <= 5; i++ {
		require.NoError(t, s.UpdateCell(i, 1, string(rune('0'+i))))
	}

	require.NoError(t, s.DeleteRow(3))

	v, err := s.Cell(3, 1)
	require.NoError(t, err)
	require.Equal(t, "4", v)
	v, err = s.Cell(4, 1)
	require.NoError(t, err)
	require.Equal(t, "5", v)

	last, err := s.LastRow()
	require.NoError(t, err)
	require.Equal(t, 4, last)

	require.Error(t, s.DeleteRow(99))
}

func TestSQLiteClearCell(t *testing.T) {
	wb, _ := openTestWorkbook(t)
	s, err := wb.EnsureSheet("Jobs", []string{"a", "b"})
	require.NoError(t, err)

	require.NoError(t, s.ClearCell(1, 2))
	v, err := s.Cell(1, 2)
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, s.ClearCell(9, 9))
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	wb, err := Open(path)
	require.NoError(t, err)
	s, err := wb.EnsureSheet("Jobs", []string{"h"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateCell(2, 1, "kept"))
	require.NoError(t, s.SetColumnValidation(8, []string{"NEW"}))
	require.NoError(t, wb.Close())

	wb2, err := Open(path)
	require.NoError(t, err)
	defer wb2.Close()

	s2, err := wb2.Sheet("Jobs")
	require.NoError(t, err)
	v, err := s2.Cell(2, 1)
	require.NoError(t, err)
	require.Equal(t, "kept", v)
}
