package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// SQLiteWorkbook persists tabs in a local sqlite file. One row per sheet
// row, cells as a JSON array, positions contiguous from 1 (row 1 = header).
type SQLiteWorkbook struct {
	pool *sql.DB
	lock *flock.Flock
}

// Open opens (or creates) a workbook file. The file is guarded with a
// sidecar flock: purge apply and edit handling assume a single external
// invoker, so a second process gets an error instead of racing.
func Open(path string) (*SQLiteWorkbook, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock workbook: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("workbook %s is locked by another process", path)
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		_ = lock.Unlock()
		return nil, err
	}

	wb := &SQLiteWorkbook{pool: pool, lock: lock}
	if err := wb.migrate(); err != nil {
		_ = pool.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("migrate workbook: %w", err)
	}
	return wb, nil
}

func (wb *SQLiteWorkbook) Close() error {
	if wb == nil || wb.pool == nil {
		return nil
	}
	err := wb.pool.Close()
	if wb.lock != nil {
		_ = wb.lock.Unlock()
	}
	return err
}

func (wb *SQLiteWorkbook) migrate() error {
	tx, err := wb.pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS sheets (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS rows (
  sheet_id INTEGER NOT NULL,
  pos INTEGER NOT NULL,
  cells TEXT NOT NULL DEFAULT '[]',
  PRIMARY KEY (sheet_id, pos)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS validations (
  sheet_id INTEGER NOT NULL,
  col INTEGER NOT NULL,
  allowed TEXT NOT NULL,
  PRIMARY KEY (sheet_id, col)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func (wb *SQLiteWorkbook) sheetID(name string) (int64, error) {
	var id int64
	err := wb.pool.QueryRow(`SELECT id FROM sheets WHERE name = ?;`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (wb *SQLiteWorkbook) Sheet(name string) (Sheet, error) {
	id, err := wb.sheetID(name)
	if err != nil {
		return nil, err
	}
	return &sqliteSheet{wb: wb, id: id, name: name}, nil
}

func (wb *SQLiteWorkbook) EnsureSheet(name string, header []string) (Sheet, error) {
	if s, err := wb.Sheet(name); err == nil {
		return s, nil
	}
	res, err := wb.pool.Exec(`INSERT INTO sheets (name) VALUES (?);`, name)
	if err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	id, _ := res.LastInsertId()
	s := &sqliteSheet{wb: wb, id: id, name: name}
	if len(header) > 0 {
		if err := s.writeRow(1, header); err != nil {
			return nil, err
		}
	}
	return s, nil
}

type sqliteSheet struct {
	wb   *SQLiteWorkbook
	id   int64
	name string
}

func (s *sqliteSheet) Name() string { return s.name }

func (s *sqliteSheet) readRow(pos int) ([]string, error) {
	var raw string
	err := s.wb.pool.QueryRow(
		`SELECT cells FROM rows WHERE sheet_id = ? AND pos = ?;`, s.id, pos,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cells []string
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return nil, fmt.Errorf("row %d of %q: %w", pos, s.name, err)
	}
	return cells, nil
}

func (s *sqliteSheet) writeRow(pos int, cells []string) error {
	if cells == nil {
		cells = []string{}
	}
	b, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	_, err = s.wb.pool.Exec(`
INSERT INTO rows (sheet_id, pos, cells) VALUES (?, ?, ?)
ON CONFLICT (sheet_id, pos) DO UPDATE SET cells = excluded.cells;`,
		s.id, pos, string(b))
	return err
}

func (s *sqliteSheet) Values() ([][]string, error) {
	rows, err := s.wb.pool.Query(
		`SELECT pos, cells FROM rows WHERE sheet_id = ? ORDER BY pos;`, s.id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grid [][]string
	for rows.Next() {
		var pos int
		var raw string
		if err := rows.Scan(&pos, &raw); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("row %d of %q: %w", pos, s.name, err)
		}
		// positions are kept contiguous, but tolerate gaps from older files
		for len(grid) < pos-1 {
			grid = append(grid, nil)
		}
		grid = append(grid, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cols := 0
	for _, r := range grid {
		if len(r) > cols {
			cols = len(r)
		}
	}
	for i, r := range grid {
		padded := make([]string, cols)
		copy(padded, r)
		grid[i] = padded
	}
	return grid, nil
}

func (s *sqliteSheet) Cell(row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", nil
	}
	cells, err := s.readRow(row)
	if err != nil {
		return "", err
	}
	if col > len(cells) {
		return "", nil
	}
	return cells[col-1], nil
}

func (s *sqliteSheet) UpdateCell(row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("update cell: bad address (%d,%d)", row, col)
	}
	cells, err := s.readRow(row)
	if err != nil {
		return err
	}
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	return s.writeRow(row, cells)
}

func (s *sqliteSheet) ClearCell(row, col int) error {
	if row < 1 || col < 1 {
		return nil
	}
	cells, err := s.readRow(row)
	if err != nil {
		return err
	}
	if cells == nil || col > len(cells) {
		return nil
	}
	cells[col-1] = ""
	return s.writeRow(row, cells)
}

func (s *sqliteSheet) DeleteRow(row int) error {
	if row < 1 {
		return fmt.Errorf("delete row: no row %d", row)
	}
	tx, err := s.wb.pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM rows WHERE sheet_id = ? AND pos = ?;`, s.id, row)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete row: no row %d", row)
	}

	// Shift in two steps through negative positions so the (sheet_id, pos)
	// primary key never collides mid-update.
	if _, err := tx.Exec(
		`UPDATE rows SET pos = -(pos - 1) WHERE sheet_id = ? AND pos > ?;`, s.id, row); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`UPDATE rows SET pos = -pos WHERE sheet_id = ? AND pos < 0;`, s.id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteSheet) LastRow() (int, error) {
	var n sql.NullInt64
	if err := s.wb.pool.QueryRow(
		`SELECT MAX(pos) FROM rows WHERE sheet_id = ?;`, s.id).Scan(&n); err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}

func (s *sqliteSheet) LastCol() (int, error) {
	grid, err := s.Values()
	if err != nil {
		return 0, err
	}
	cols := 0
	for _, r := range grid {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return cols, nil
}

func (s *sqliteSheet) SetColumnValidation(col int, allowed []string) error {
	if col < 1 {
		return fmt.Errorf("set validation: bad column %d", col)
	}
	b, err := json.Marshal(allowed)
	if err != nil {
		return err
	}
	_, err = s.wb.pool.Exec(`
INSERT INTO validations (sheet_id, col, allowed) VALUES (?, ?, ?)
ON CONFLICT (sheet_id, col) DO UPDATE SET allowed = excluded.allowed;`,
		s.id, col, string(b))
	return err
}
