package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfmabe/contour2llz/internal/extract"
	"github.com/pfmabe/contour2llz/internal/llz"
	"github.com/pfmabe/contour2llz/internal/monitoring"
	"github.com/pfmabe/contour2llz/internal/pfm"
)

func TestGenerate(t *testing.T) {
	monitoring.SetLogger(nil)
	path := filepath.Join(t.TempDir(), "synthetic.pfm")

	stats, err := Generate(path, Params{Width: 22, Height: 9, PerBin: 2, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, 22, stats.Contour, "one contour sounding per column")
	assert.Equal(t, 22*9*2, stats.Survey)
	assert.Equal(t, 22*9, stats.Bins)
	// Columns 6, 13, 20 are deleted; 10, 21 are reference.
	assert.Equal(t, 5, stats.ContourExcluded)

	s, err := pfm.Open(path)
	require.NoError(t, err)
	defer s.Close()

	e, err := extract.New(extract.Options{})
	require.NoError(t, err)
	var got []llz.Record
	res, err := e.Run(s, extract.SinkFunc(func(r llz.Record) error {
		got = append(got, r)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, stats.Contour-stats.ContourExcluded, res.Emitted)
	for _, r := range got {
		assert.Equal(t, 10.0, r.Depth)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a, err := Generate(filepath.Join(dir, "a.pfm"), Params{Width: 5, Height: 5, PerBin: 3, Seed: 42})
	require.NoError(t, err)
	b, err := Generate(filepath.Join(dir, "b.pfm"), Params{Width: 5, Height: 5, PerBin: 3, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	sa, err := pfm.Open(filepath.Join(dir, "a.pfm"))
	require.NoError(t, err)
	defer sa.Close()
	sb, err := pfm.Open(filepath.Join(dir, "b.pfm"))
	require.NoError(t, err)
	defer sb.Close()

	da, err := sa.ReadDepthArray(2, 3)
	require.NoError(t, err)
	db, err := sb.ReadDepthArray(2, 3)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestGenerateRejectsBadParams(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(filepath.Join(dir, "a.pfm"), Params{Width: 0, Height: 5})
	assert.Error(t, err)
	_, err = Generate(filepath.Join(dir, "b.pfm"), Params{Width: 5, Height: 5, PerBin: -1})
	assert.Error(t, err)
}
