package llz

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/pfmabe/contour2llz/internal/fsutil"
)

// Writer appends records to an LLZ file.
type Writer struct {
	path  string
	file  io.WriteCloser
	bw    *bufio.Writer
	buf   [RecordSize]byte
	count int

	closed bool
}

// Create creates path on fsys and writes the header. The file is left in
// place if a later write fails.
func Create(fsys fsutil.FileSystem, path string, h Header) (*Writer, error) {
	block, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}

	f, err := fsys.Create(path)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		path: path,
		file: f,
		bw:   bufio.NewWriterSize(f, 64*1024),
	}
	if _, err := w.bw.Write(block); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

// Path returns the file being written.
func (w *Writer) Path() string { return w.path }

// Count returns the number of records appended so far.
func (w *Writer) Count() int { return w.count }

// Append writes one record.
func (w *Writer) Append(r Record) error {
	if w.closed {
		return ErrClosed
	}
	putRecord(w.buf[:], r)
	if _, err := w.bw.Write(w.buf[:]); err != nil {
		return fmt.Errorf("write record %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// Close flushes buffered records and closes the file. Calling Close more
// than once is a no-op.
func (w *Writer) Close() error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.bw.Flush()
	if flushErr != nil {
		flushErr = fmt.Errorf("flush %s: %w", w.path, flushErr)
	}
	return errors.Join(flushErr, w.file.Close())
}
