package pfm

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	_ "modernc.org/sqlite"
)

// gridTables are the tables a store must carry besides schema_migrations.
var gridTables = []string{"pfm_header", "pfm_list_files", "pfm_bins", "pfm_depths"}

// Store is an open grid store.
type Store struct {
	db     *sql.DB
	path   string
	header Header

	binStmt   *sql.Stmt
	depthStmt *sql.Stmt

	closed bool
}

// Open opens an existing store for reading. The returned store refuses
// writes.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	// PRAGMAs are per connection; the whole tool runs on one.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA query_only = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
		}
	}

	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	h, err := readHeader(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s, err := newStore(db, path, h)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newStore(db *sql.DB, path string, h Header) (*Store, error) {
	binStmt, err := db.Prepare(`
		SELECT num_soundings, COALESCE(min_z, 0), COALESCE(max_z, 0), COALESCE(avg_z, 0)
		FROM pfm_bins
		WHERE bin_row = ? AND bin_col = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare bin query: %w", err)
	}
	depthStmt, err := db.Prepare(`
		SELECT x, y, z, validity, file_number, line_number, ping_number, beam_number
		FROM pfm_depths
		WHERE bin_row = ? AND bin_col = ?
		ORDER BY seq`)
	if err != nil {
		binStmt.Close()
		return nil, fmt.Errorf("prepare depth query: %w", err)
	}
	return &Store{
		db:        db,
		path:      path,
		header:    h,
		binStmt:   binStmt,
		depthStmt: depthStmt,
	}, nil
}

// checkSchema verifies db carries the grid tables at SchemaVersion.
func checkSchema(db *sql.DB) error {
	var n int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name IN ('schema_migrations', ?, ?, ?, ?)`,
		gridTables[0], gridTables[1], gridTables[2], gridTables[3],
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if n != len(gridTables)+1 {
		return fmt.Errorf("%w: missing grid tables", ErrFormat)
	}

	var version int64
	var dirty bool
	err = db.QueryRow(`SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: no schema version recorded", ErrCorrupt)
	}
	if err != nil {
		return fmt.Errorf("%w: read schema version: %v", ErrCorrupt, err)
	}
	if dirty {
		return fmt.Errorf("%w: schema version %d is dirty", ErrCorrupt, version)
	}
	if version != SchemaVersion {
		return fmt.Errorf("%w: schema version %d, want %d", ErrCorrupt, version, SchemaVersion)
	}
	return nil
}

func readHeader(db *sql.DB) (Header, error) {
	var h Header
	err := db.QueryRow(`
		SELECT grid_id, bin_width, bin_height, bin_size_m, min_x, min_y, max_x, max_y
		FROM pfm_header
		WHERE id = 1`,
	).Scan(&h.GridID, &h.BinWidth, &h.BinHeight, &h.BinSizeM, &h.MinX, &h.MinY, &h.MaxX, &h.MaxY)
	if errors.Is(err, sql.ErrNoRows) {
		return Header{}, fmt.Errorf("%w: no grid header", ErrCorrupt)
	}
	if err != nil {
		return Header{}, fmt.Errorf("%w: read grid header: %v", ErrCorrupt, err)
	}
	if h.BinWidth <= 0 || h.BinHeight <= 0 {
		return Header{}, fmt.Errorf("%w: invalid grid dimensions %dx%d", ErrCorrupt, h.BinWidth, h.BinHeight)
	}
	return h, nil
}

// Path returns the file the store was opened from.
func (s *Store) Path() string { return s.path }

// Header returns the grid header.
func (s *Store) Header() Header { return s.header }

// Dimensions returns the grid width (columns) and height (rows).
func (s *Store) Dimensions() (width, height int) {
	return s.header.BinWidth, s.header.BinHeight
}

func (s *Store) checkCoord(col, row int) error {
	if s.closed {
		return ErrClosed
	}
	if col < 0 || col >= s.header.BinWidth || row < 0 || row >= s.header.BinHeight {
		return fmt.Errorf("%w: %s in %dx%d grid", ErrIndexOutOfRange, Coord{col, row}, s.header.BinWidth, s.header.BinHeight)
	}
	return nil
}

// ReadBinRecord returns the summary of bin (col, row).
func (s *Store) ReadBinRecord(col, row int) (BinRecord, error) {
	if err := s.checkCoord(col, row); err != nil {
		return BinRecord{}, err
	}
	bin := BinRecord{Coord: Coord{Col: col, Row: row}}
	err := s.binStmt.QueryRow(row, col).Scan(&bin.NumSoundings, &bin.MinZ, &bin.MaxZ, &bin.AvgZ)
	if errors.Is(err, sql.ErrNoRows) {
		return bin, nil
	}
	if err != nil {
		return BinRecord{}, fmt.Errorf("read bin %s: %w", bin.Coord, err)
	}
	return bin, nil
}

// ReadDepthArray returns the soundings of bin (col, row) in insertion order.
// The slice belongs to the caller.
func (s *Store) ReadDepthArray(col, row int) ([]DepthRecord, error) {
	if err := s.checkCoord(col, row); err != nil {
		return nil, err
	}
	rows, err := s.depthStmt.Query(row, col)
	if err != nil {
		return nil, fmt.Errorf("read depths %s: %w", Coord{col, row}, err)
	}
	defer rows.Close()

	var depths []DepthRecord
	for rows.Next() {
		var d DepthRecord
		if err := rows.Scan(&d.X, &d.Y, &d.Z, &d.Validity, &d.FileNumber, &d.LineNumber, &d.PingNumber, &d.BeamNumber); err != nil {
			return nil, fmt.Errorf("scan depth %s: %w", Coord{col, row}, err)
		}
		depths = append(depths, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read depths %s: %w", Coord{col, row}, err)
	}
	return depths, nil
}

// NextListFileNumber returns the number the next registered input file
// would receive, which is also the count of registered files.
func (s *Store) NextListFileNumber() (int16, error) {
	if s.closed {
		return 0, ErrClosed
	}
	var next int64
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(file_number) + 1, 0) FROM pfm_list_files`).Scan(&next); err != nil {
		return 0, fmt.Errorf("read list file count: %w", err)
	}
	if next < 0 || next > math.MaxInt16 {
		return 0, fmt.Errorf("%w: list file number %d out of range", ErrCorrupt, next-1)
	}
	return int16(next), nil
}

// ReadListFile returns registry entry n.
func (s *Store) ReadListFile(n int16) (ListFile, error) {
	if s.closed {
		return ListFile{}, ErrClosed
	}
	lf := ListFile{FileNumber: n}
	err := s.db.QueryRow(`SELECT path, type FROM pfm_list_files WHERE file_number = ?`, n).Scan(&lf.Path, &lf.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return ListFile{}, fmt.Errorf("%w: list file %d", ErrIndexOutOfRange, n)
	}
	if err != nil {
		return ListFile{}, fmt.Errorf("read list file %d: %w", n, err)
	}
	return lf, nil
}

// ListFiles returns the whole registry in file number order.
func (s *Store) ListFiles() ([]ListFile, error) {
	if s.closed {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(`SELECT file_number, path, type FROM pfm_list_files ORDER BY file_number`)
	if err != nil {
		return nil, fmt.Errorf("query list files: %w", err)
	}
	defer rows.Close()

	var files []ListFile
	for rows.Next() {
		var lf ListFile
		if err := rows.Scan(&lf.FileNumber, &lf.Path, &lf.Type); err != nil {
			return nil, fmt.Errorf("scan list file: %w", err)
		}
		files = append(files, lf)
	}
	return files, rows.Err()
}

// Close releases the store. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.binStmt.Close(), s.depthStmt.Close(), s.db.Close())
}
