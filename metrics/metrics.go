// Package metrics records lint run statistics as Prometheus metrics and
// persists them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/recordlint/validation"
)

const namespace = "recordlint"

// Recorder accumulates metrics across the runs of one process.
type Recorder struct {
	registry *prometheus.Registry

	runs      prometheus.Counter
	documents prometheus.Counter
	evaluated prometheus.Counter
	skipped   prometheus.Counter
	findings  *prometheus.CounterVec
	duration  prometheus.Gauge
	lastRun   prometheus.Gauge
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Lint runs completed.",
		}),
		documents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents linted.",
		}),
		evaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_evaluated_total",
			Help:      "Rule evaluations performed.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_skipped_total",
			Help:      "Rule evaluations skipped by the applicability policy.",
		}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Findings reported, by severity.",
		}, []string{"severity"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last lint run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last lint run finished.",
		}),
	}

	r.registry.MustRegister(r.runs, r.documents, r.evaluated, r.skipped, r.findings, r.duration, r.lastRun)

	// Expose every severity from the first scrape.
	for _, s := range []validation.Severity{validation.SeverityError, validation.SeverityWarning, validation.SeverityInfo} {
		r.findings.WithLabelValues(s.String())
	}

	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records one completed run.
func (r *Recorder) Observe(stats validation.Stats, findings []validation.Finding, elapsed time.Duration, finished time.Time) {
	r.runs.Inc()
	r.documents.Add(float64(stats.Documents))
	r.evaluated.Add(float64(stats.Evaluated))
	r.skipped.Add(float64(stats.Skipped))
	for _, f := range findings {
		r.findings.WithLabelValues(f.Severity.String()).Inc()
	}
	r.duration.Set(elapsed.Seconds())
	r.lastRun.Set(float64(finished.Unix()))
}

// WriteTextfile writes the current metrics to path, creating parent
// directories as needed.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
