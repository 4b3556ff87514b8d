package monitoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfmabe/contour2llz/internal/timeutil"
)

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.CellsScanned.Add(6)
	m.RecordsEmitted.Inc()
	m.SoundingsRejected.WithLabelValues(ReasonValidity).Add(2)
	m.ObserveRun(time.Now().Add(-time.Second), true)

	assert.Equal(t, 6.0, testutil.ToFloat64(m.CellsScanned))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SoundingsRejected.WithLabelValues(ReasonValidity)))
	assert.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)

	path := filepath.Join(t.TempDir(), "contour2llz.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "contour2llz_cells_scanned_total 6"), text)
	assert.True(t, strings.Contains(text, `contour2llz_soundings_rejected_total{reason="validity"} 2`), text)
}

func TestObserveRunFailureLeavesLastSuccess(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(time.Now(), false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastSuccess))

	var nilMetrics *Metrics
	nilMetrics.ObserveRun(time.Now(), true)
}

func TestObserveRunUsesClock(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(start)
	m := NewMetrics()
	m.Clock = clock

	clock.Advance(2500 * time.Millisecond)
	m.ObserveRun(start, true)

	assert.Equal(t, 2.5, testutil.ToFloat64(m.RunDuration))
	assert.Equal(t, float64(start.Add(2500*time.Millisecond).Unix()), testutil.ToFloat64(m.LastSuccess))
}
