package pfm

import "errors"

var (
	// ErrNotFound is returned by Open when the store file does not exist.
	ErrNotFound = errors.New("pfm: store not found")
	// ErrFormat is returned by Open when the file is not a grid store.
	ErrFormat = errors.New("pfm: not a grid store")
	// ErrCorrupt is returned by Open when the store schema or header is
	// unusable.
	ErrCorrupt = errors.New("pfm: corrupt store")
	// ErrIndexOutOfRange is returned for bin coordinates outside the grid.
	ErrIndexOutOfRange = errors.New("pfm: bin index out of range")
	// ErrExists is returned by Create when the target file already exists.
	ErrExists = errors.New("pfm: store already exists")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("pfm: store is closed")
)
