package pfm

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/google/uuid"
)

// Create builds a new, empty store at path at the current schema version
// and writes h as its header. A missing GridID is filled with a random UUID.
func Create(path string, h Header) (*Store, error) {
	if h.BinWidth <= 0 || h.BinHeight <= 0 {
		return nil, fmt.Errorf("pfm: invalid grid dimensions %dx%d", h.BinWidth, h.BinHeight)
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	if h.GridID == "" {
		h.GridID = uuid.NewString()
	}
	_, err = db.Exec(`
		INSERT INTO pfm_header (id, grid_id, bin_width, bin_height, bin_size_m, min_x, min_y, max_x, max_y)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.GridID, h.BinWidth, h.BinHeight, h.BinSizeM, h.MinX, h.MinY, h.MaxX, h.MaxY,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("write grid header: %w", err)
	}

	s, err := newStore(db, path, h)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// AddListFile registers an input file and returns its file number.
func (s *Store) AddListFile(path string, fileType int16) (int16, error) {
	next, err := s.NextListFileNumber()
	if err != nil {
		return 0, err
	}
	if int(next) < 0 || int(next) >= math.MaxInt16 {
		return 0, fmt.Errorf("pfm: list file registry full")
	}
	if _, err := s.db.Exec(`INSERT INTO pfm_list_files (file_number, path, type) VALUES (?, ?, ?)`, next, path, fileType); err != nil {
		return 0, fmt.Errorf("add list file %q: %w", path, err)
	}
	return next, nil
}

// AddDepths appends soundings to bin (col, row) and refreshes the bin
// summary, all in one transaction.
func (s *Store) AddDepths(col, row int, depths []DepthRecord) (err error) {
	if err := s.checkCoord(col, row); err != nil {
		return err
	}
	if len(depths) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var seq int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(seq) + 1, 0) FROM pfm_depths WHERE bin_row = ? AND bin_col = ?`, row, col).Scan(&seq); err != nil {
		return fmt.Errorf("read bin sequence %s: %w", Coord{col, row}, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO pfm_depths (bin_row, bin_col, seq, x, y, z, validity, file_number, line_number, ping_number, beam_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare depth insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range depths {
		if _, err := stmt.Exec(row, col, seq+i, d.X, d.Y, d.Z, uint32(d.Validity), d.FileNumber, d.LineNumber, d.PingNumber, d.BeamNumber); err != nil {
			return fmt.Errorf("insert depth %s: %w", Coord{col, row}, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO pfm_bins (bin_row, bin_col, num_soundings, min_z, max_z, avg_z)
		SELECT ?, ?, COUNT(*), MIN(z), MAX(z), AVG(z)
		FROM pfm_depths
		WHERE bin_row = ? AND bin_col = ?
		ON CONFLICT (bin_row, bin_col) DO UPDATE SET
			num_soundings = excluded.num_soundings,
			min_z = excluded.min_z,
			max_z = excluded.max_z,
			avg_z = excluded.avg_z`,
		row, col, row, col,
	)
	if err != nil {
		return fmt.Errorf("update bin %s: %w", Coord{col, row}, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
