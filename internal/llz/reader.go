package llz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/pfmabe/contour2llz/internal/fsutil"
)

// Reader reads records from an LLZ file in file order.
type Reader struct {
	file   fs.File
	br     *bufio.Reader
	header Header
	buf    [RecordSize]byte
}

// Open opens path on fsys and decodes its header.
func Open(fsys fsutil.FileSystem, path string) (*Reader, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}

	r := &Reader{file: f, br: bufio.NewReader(f)}
	block := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r.br, block); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidHeader, path, err)
	}
	if err := r.header.UnmarshalBinary(block); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Header returns the decoded file header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	_, err := io.ReadFull(r.br, r.buf[:])
	switch {
	case err == nil:
		return getRecord(r.buf[:]), nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Record{}, ErrTruncated
	default:
		return Record{}, err
	}
}

// ReadAll returns every remaining record.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
