package llz

import (
	"bytes"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfmabe/contour2llz/internal/fsutil"
	"github.com/pfmabe/contour2llz/internal/units"
)

func contourHeader() Header {
	return Header{Source: "Derived from harbor.pfm", DepthUnits: units.Meters}
}

func TestWriteReadRoundTrip(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	records := []Record{
		{Lat: 36.95, Lon: -76.33, Depth: 12.25},
		{Lat: -0.5, Lon: 179.999999, Depth: 0},
		{Lat: 1e-9, Lon: -180, Depth: -3.5, Status: 7},
	}

	w, err := Create(mfs, "/out/harbor.llz", contourHeader())
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, w.Append(r))
	}
	assert.Equal(t, 3, w.Count())
	assert.Equal(t, "/out/harbor.llz", w.Path())
	require.NoError(t, w.Close())

	info, err := mfs.Stat("/out/harbor.llz")
	require.NoError(t, err)
	assert.Equal(t, int64(HeaderSize+3*RecordSize), info.Size())

	r, err := Open(mfs, "/out/harbor.llz")
	require.NoError(t, err)
	defer r.Close()

	want := contourHeader()
	want.Version = Version
	assert.Equal(t, want, r.Header())

	got, err := r.ReadAll()
	require.NoError(t, err)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderOnlyFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	w, err := Create(mfs, "empty.llz", contourHeader())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := mfs.ReadFile("empty.llz")
	require.NoError(t, err)
	require.Len(t, data, HeaderSize)
	assert.True(t, strings.HasPrefix(string(data), "[VERSION] = LLZ library V1.00\n[SOURCE] = Derived from harbor.pfm\n"))
	assert.Contains(t, string(data), "[TIME FLAG] = 0\n[UNCERTAINTY FLAG] = 0\n[DEPTH UNITS] = 0\n[END OF HEADER]\n")

	r, err := Open(mfs, "empty.llz")
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRecordEncoding(t *testing.T) {
	var buf [RecordSize]byte
	putRecord(buf[:], Record{Lat: 1, Lon: 2, Depth: -1, Status: 0})

	want := []byte{
		0, 0, 0, 0, 0, 0, 0xf0, 0x3f, // 1.0
		0, 0, 0, 0, 0, 0, 0x00, 0x40, // 2.0
		0, 0, 0, 0, 0, 0, 0xf0, 0xbf, // -1.0
		0,
	}
	assert.Equal(t, want, buf[:])
}

func TestIdenticalOutput(t *testing.T) {
	write := func() []byte {
		mfs := fsutil.NewMemoryFileSystem()
		w, err := Create(mfs, "a.llz", contourHeader())
		require.NoError(t, err)
		for i := 0; i < 100; i++ {
			require.NoError(t, w.Append(Record{Lat: float64(i) / 7, Lon: -float64(i) / 3, Depth: float64(i)}))
		}
		require.NoError(t, w.Close())
		data, err := mfs.ReadFile("a.llz")
		require.NoError(t, err)
		return data
	}
	assert.True(t, bytes.Equal(write(), write()))
}

func TestWriterClose(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	w, err := Create(mfs, "c.llz", contourHeader())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Append(Record{}), ErrClosed)

	var nilWriter *Writer
	assert.NoError(t, nilWriter.Close())
}

func TestCreateErrors(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	mfs.CreateErr = fs.ErrPermission
	_, err := Create(mfs, "ro.llz", contourHeader())
	assert.ErrorIs(t, err, fs.ErrPermission)

	_, err = Create(fsutil.OSFileSystem{}, filepath.Join(t.TempDir(), "no", "such", "dir.llz"), contourHeader())
	assert.Error(t, err)
}

func TestHeaderValidation(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		wantErr error
	}{
		{"newline in source", Header{Source: "a\nb"}, ErrInvalidHeader},
		{"nul in source", Header{Source: "a\x00b"}, ErrInvalidHeader},
		{"bad units", Header{Source: "x", DepthUnits: units.DepthUnit(12)}, ErrInvalidHeader},
		{"too large", Header{Source: strings.Repeat("s", HeaderSize)}, ErrHeaderTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.header.MarshalBinary()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHeaderFlagsRoundTrip(t *testing.T) {
	h := Header{Version: "custom", Source: "x", TimeFlag: true, UncertaintyFlag: true, DepthUnits: units.Fathoms}
	block, err := h.MarshalBinary()
	require.NoError(t, err)

	var got Header
	require.NoError(t, got.UnmarshalBinary(block))
	assert.Equal(t, h, got)
}

func TestUnmarshalInvalid(t *testing.T) {
	var h Header
	assert.ErrorIs(t, h.UnmarshalBinary([]byte("short")), ErrInvalidHeader)

	block := make([]byte, HeaderSize)
	copy(block, "[SOURCE] = x\n")
	assert.ErrorIs(t, h.UnmarshalBinary(block), ErrInvalidHeader)

	block = make([]byte, HeaderSize)
	copy(block, "[DEPTH UNITS] = nine\n[END OF HEADER]\n")
	assert.ErrorIs(t, h.UnmarshalBinary(block), ErrInvalidHeader)
}

func TestOpenErrors(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()

	_, err := Open(mfs, "missing.llz")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, mfs.WriteFile("short.llz", []byte("[VERSION] = x\n"), 0644))
	_, err = Open(mfs, "short.llz")
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestTruncatedRecord(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	block, err := contourHeader().MarshalBinary()
	require.NoError(t, err)
	data := append(block, make([]byte, RecordSize+10)...)
	require.NoError(t, mfs.WriteFile("trunc.llz", data, 0644))

	r, err := Open(mfs, "trunc.llz")
	require.NoError(t, err)
	recs, err := r.ReadAll()
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Len(t, recs, 1)
}
