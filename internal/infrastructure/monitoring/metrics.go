package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the roster load metrics
type Metrics struct {
	// Fetch metrics
	FetchesTotal  *prometheus.CounterVec
	FetchDuration prometheus.Histogram

	// Parse metrics
	MovesParsed     *prometheus.CounterVec
	MovesSkipped    *prometheus.CounterVec
	DefaultImages   *prometheus.CounterVec
	LayoutShortfall *prometheus.CounterVec

	// Roster metrics
	CharactersLoaded prometheus.Gauge
	CharactersFailed prometheus.Gauge
	RosterDuration   prometheus.Histogram

	registry *prometheus.Registry

	// Snapshot for the CLI summary
	snapshot MetricsSnapshot
	mu       sync.Mutex
}

// MetricsSnapshot holds running totals for human-readable reporting
type MetricsSnapshot struct {
	Fetches          int64
	FetchErrors      int64
	MovesParsed      int64
	MovesSkipped     int64
	DefaultImages    int64
	LayoutShortfall  int64
	CharactersLoaded int64
	CharactersFailed int64
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := NewMetricsWith(reg)
	m.registry = reg
	return m
}

// NewMetricsWith registers the collectors on reg
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framedata_fetches_total",
				Help: "Total number of data page fetches by outcome",
			},
			[]string{"outcome"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "framedata_fetch_duration_seconds",
				Help:    "Data page fetch duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		MovesParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framedata_moves_parsed_total",
				Help: "Total number of move blocks parsed",
			},
			[]string{"character"},
		),
		MovesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framedata_moves_skipped_total",
				Help: "Total number of move blocks skipped by reason",
			},
			[]string{"character", "reason"},
		),
		DefaultImages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framedata_default_images_total",
				Help: "Moves that fell back to the placeholder hitbox image",
			},
			[]string{"character"},
		),
		LayoutShortfall: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framedata_layout_shortfall_total",
				Help: "Moves with fewer data cells than the row layout expects",
			},
			[]string{"character"},
		),
		CharactersLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "framedata_characters_loaded",
				Help: "Characters present in the last roster load",
			},
		),
		CharactersFailed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "framedata_characters_failed",
				Help: "Characters whose data page failed to load in the last roster load",
			},
		),
		RosterDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "framedata_roster_load_duration_seconds",
				Help:    "Full roster load duration in seconds",
				Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
	}
}

// Registry returns the private registry, or nil when built with NewMetricsWith
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFetch records one data page fetch
func (m *Metrics) RecordFetch(outcome string, duration time.Duration) {
	m.FetchesTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Fetches++
	if outcome != "ok" {
		m.snapshot.FetchErrors++
	}
	m.mu.Unlock()
}

// RecordMoveParsed records a successfully parsed move
func (m *Metrics) RecordMoveParsed(character string) {
	m.MovesParsed.WithLabelValues(character).Inc()

	m.mu.Lock()
	m.snapshot.MovesParsed++
	m.mu.Unlock()
}

// RecordMoveSkipped records a move block that failed to parse
func (m *Metrics) RecordMoveSkipped(character, reason string) {
	m.MovesSkipped.WithLabelValues(character, reason).Inc()

	m.mu.Lock()
	m.snapshot.MovesSkipped++
	m.mu.Unlock()
}

// RecordDefaultImage records a placeholder hitbox image
func (m *Metrics) RecordDefaultImage(character string) {
	m.DefaultImages.WithLabelValues(character).Inc()

	m.mu.Lock()
	m.snapshot.DefaultImages++
	m.mu.Unlock()
}

// RecordLayoutShortfall records a move with missing trailing columns
func (m *Metrics) RecordLayoutShortfall(character string) {
	m.LayoutShortfall.WithLabelValues(character).Inc()

	m.mu.Lock()
	m.snapshot.LayoutShortfall++
	m.mu.Unlock()
}

// RecordRosterLoad records the outcome of a full roster load
func (m *Metrics) RecordRosterLoad(loaded, failed int, duration time.Duration) {
	m.CharactersLoaded.Set(float64(loaded))
	m.CharactersFailed.Set(float64(failed))
	m.RosterDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.CharactersLoaded = int64(loaded)
	m.snapshot.CharactersFailed = int64(failed)
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}
