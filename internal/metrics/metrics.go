// Package metrics exposes scan outcomes as Prometheus metrics.
//
// The scanner is a batch tool, so metrics are not served over HTTP. They are
// written once per run to a file in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/nao1215/latinscan/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "latinscan"

// ScanMetrics records line outcomes, candidate counts and document timings.
// It satisfies pipeline.Recorder.
type ScanMetrics struct {
	registry *prometheus.Registry

	linesTotal        *prometheus.CounterVec
	failuresTotal     *prometheus.CounterVec
	documentsTotal    prometheus.Counter
	candidatesHist    prometheus.Histogram
	survivorsHist     prometheus.Histogram
	documentDuration  prometheus.Histogram
	documentLinesHist prometheus.Histogram

	// collectors is a slice of all collectors for easier iteration
	collectors []prometheus.Collector
}

// NewScanMetrics creates scan metrics and registers them with registry.
func NewScanMetrics(registry *prometheus.Registry) (*ScanMetrics, error) {
	m := &ScanMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register scan metrics: %w", err)
	}
	return m, nil
}

func (m *ScanMetrics) initMetrics() {
	m.linesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Total number of scanned lines by outcome",
		},
		[]string{"status"}, // status: scanned, defective, failed
	)

	m.failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_failures_total",
			Help:      "Total number of failed lines by pipeline step",
		},
		[]string{"step"},
	)

	m.documentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Total number of scanned documents",
		},
	)

	m.candidatesHist = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "line_candidates",
			Help:      "Pronunciation variants per line before the meter filter",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512
		},
	)

	m.survivorsHist = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "line_metrical_candidates",
			Help:      "Pronunciation variants per line that scan",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		},
	)

	m.documentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time taken to scan a document",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
	)

	m.documentLinesHist = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_lines",
			Help:      "Lines per scanned document",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		},
	)

	m.collectors = []prometheus.Collector{
		m.linesTotal,
		m.failuresTotal,
		m.documentsTotal,
		m.candidatesHist,
		m.survivorsHist,
		m.documentDuration,
		m.documentLinesHist,
	}
}

// Describe implements the Collector interface
func (m *ScanMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *ScanMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordLine counts one line by outcome.
func (m *ScanMetrics) RecordLine(status model.Status) {
	m.linesTotal.WithLabelValues(statusLabel(status)).Inc()
}

// RecordCandidates observes the variant counts of one line.
func (m *ScanMetrics) RecordCandidates(expanded, surviving int) {
	m.candidatesHist.Observe(float64(expanded))
	m.survivorsHist.Observe(float64(surviving))
}

// RecordFailure counts one failed line by step.
func (m *ScanMetrics) RecordFailure(step string) {
	m.failuresTotal.WithLabelValues(step).Inc()
}

// RecordDocument observes one scanned document.
func (m *ScanMetrics) RecordDocument(lines int, elapsed time.Duration) {
	m.documentsTotal.Inc()
	m.documentLinesHist.Observe(float64(lines))
	m.documentDuration.Observe(elapsed.Seconds())
}

// WriteTextfile writes every metric in the registry to path in the
// Prometheus text exposition format.
func (m *ScanMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusScanned:
		return "scanned"
	case model.StatusDefective:
		return "defective"
	case model.StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
