package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "content_sweeper"

// Metrics holds the counters and gauges of scan and destroy runs.
// All methods are nil-safe: calls on a nil *Metrics are no-ops.
type Metrics struct {
	registry *prometheus.Registry

	objectsListed  prometheus.Gauge
	contentFiles   *prometheus.GaugeVec
	referenced     prometheus.Gauge
	orphans        prometheus.Gauge
	orphanedBytes  prometheus.Gauge
	scanDuration   prometheus.Gauge
	lastScan       prometheus.Gauge
	deletionsTotal *prometheus.CounterVec
	destroyRuns    *prometheus.CounterVec
}

// New creates the metrics on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		objectsListed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects_listed",
			Help:      "Objects listed from the bucket in the last scan",
		}),
		contentFiles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "content_files",
			Help:      "Content files seen by the last scan",
		}, []string{"state"}),
		referenced: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects_referenced",
			Help:      "Objects referenced by content in the last scan",
		}),
		orphans: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects_orphaned",
			Help:      "Objects not referenced by any content in the last scan",
		}),
		orphanedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orphaned_bytes",
			Help:      "Total size of orphaned objects in the last scan",
		}),
		scanDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of the last scan",
		}),
		lastScan: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_scan_timestamp_seconds",
			Help:      "Unix time the last scan finished",
		}),
		deletionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletions_total",
			Help:      "Deletion attempts by result",
		}, []string{"result"}),
		destroyRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "destroy_runs_total",
			Help:      "Destroy runs by final state",
		}, []string{"state"}),
	}

	m.registry.MustRegister(
		m.objectsListed, m.contentFiles, m.referenced, m.orphans, m.orphanedBytes,
		m.scanDuration, m.lastScan, m.deletionsTotal, m.destroyRuns,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ScanStats is what a finished scan reports.
type ScanStats struct {
	Objects       int
	ContentFiles  int
	SkippedFiles  int
	Referenced    int
	Orphaned      int
	OrphanedBytes int64
	Duration      time.Duration
	FinishedAt    time.Time
}

// ObserveScan records the outcome of a scan. A zero Duration leaves the
// duration gauge untouched, for stats rebuilt from a stored manifest.
func (m *Metrics) ObserveScan(s ScanStats) {
	if m == nil {
		return
	}
	m.objectsListed.Set(float64(s.Objects))
	m.contentFiles.WithLabelValues("loaded").Set(float64(s.ContentFiles))
	m.contentFiles.WithLabelValues("skipped").Set(float64(s.SkippedFiles))
	m.referenced.Set(float64(s.Referenced))
	m.orphans.Set(float64(s.Orphaned))
	m.orphanedBytes.Set(float64(s.OrphanedBytes))
	if s.Duration > 0 {
		m.scanDuration.Set(s.Duration.Seconds())
	}
	m.lastScan.Set(float64(s.FinishedAt.Unix()))
}

// ObserveDestroy records the outcome of a destroy run.
func (m *Metrics) ObserveDestroy(state string, deleted, failed int) {
	if m == nil {
		return
	}
	m.deletionsTotal.WithLabelValues("deleted").Add(float64(deleted))
	m.deletionsTotal.WithLabelValues("failed").Add(float64(failed))
	m.destroyRuns.WithLabelValues(state).Inc()
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node_exporter textfile collector. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
