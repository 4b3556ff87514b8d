package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pfmabe/contour2llz/internal/timeutil"
)

// Rejection reasons used as the "reason" label of SoundingsRejected.
const (
	ReasonValidity   = "validity"
	ReasonProvenance = "provenance"
)

// Metrics counts what a single extraction run did. Each instance owns a
// private registry so runs and tests never share state.
type Metrics struct {
	Registry *prometheus.Registry

	CellsScanned      prometheus.Counter
	CellsSkipped      prometheus.Counter
	SoundingsExamined prometheus.Counter
	RecordsEmitted    prometheus.Counter
	SoundingsRejected *prometheus.CounterVec
	RunDuration       prometheus.Gauge
	LastSuccess       prometheus.Gauge

	// Clock times runs. NewMetrics sets the wall clock.
	Clock timeutil.Clock
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Clock:    timeutil.RealClock{},
		CellsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contour2llz_cells_scanned_total",
			Help: "Grid bins visited by the scan.",
		}),
		CellsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contour2llz_cells_skipped_total",
			Help: "Grid bins skipped after a read error.",
		}),
		SoundingsExamined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contour2llz_soundings_examined_total",
			Help: "Soundings tested against the extraction filter.",
		}),
		RecordsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contour2llz_records_emitted_total",
			Help: "LLZ records written.",
		}),
		SoundingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contour2llz_soundings_rejected_total",
			Help: "Soundings that failed the extraction filter, by reason.",
		}, []string{"reason"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "contour2llz_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "contour2llz_last_success_timestamp_seconds",
			Help: "Unix time the last successful run finished.",
		}),
	}
	m.Registry.MustRegister(
		m.CellsScanned,
		m.CellsSkipped,
		m.SoundingsExamined,
		m.RecordsEmitted,
		m.SoundingsRejected,
		m.RunDuration,
		m.LastSuccess,
	)
	return m
}

// ObserveRun records the duration of a run that started at start and, when
// ok, the time it finished.
func (m *Metrics) ObserveRun(start time.Time, ok bool) {
	if m == nil {
		return
	}
	now := m.Clock.Now()
	m.RunDuration.Set(now.Sub(start).Seconds())
	if ok {
		m.LastSuccess.Set(float64(now.Unix()))
	}
}

// WriteTextfile writes the registry in the Prometheus text format for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
