// Package metrics exposes Prometheus counters and histograms for calculation runs.
//
// A Collector owns a private registry so several runs in one process (and tests)
// never collide on the default registerer. Metrics can be written in the text
// exposition format for a node_exporter textfile collector.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

const namespace = "ghg"

// Outcome label values.
const (
	OutcomeOK             = "ok"
	OutcomeFailed         = "failed"
	OutcomeFactorsUnknown = "factors_unknown"
)

// unknownActivity labels failures that never resolved a fuel.
const unknownActivity = "unknown"

// Collector records calculation metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	failures     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	emitted      *prometheus.CounterVec
	runs         prometheus.Counter
	lastRecords  prometheus.Gauge
}

// New creates a Collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Emission calculations by activity type and outcome.",
		}, []string{"activity_type", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculation_errors_total",
			Help:      "Failed calculations by error reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent in a single calculation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"activity_type"}),
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emissions_co2e_tons_total",
			Help:      "CO2-equivalent tons calculated, by activity type.",
		}, []string{"activity_type"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_runs_total",
			Help:      "Completed inventory runs.",
		}),
		lastRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_last_run_records",
			Help:      "Number of records in the most recent inventory run.",
		}),
	}
	c.registry.MustRegister(c.calculations, c.failures, c.duration, c.emitted, c.runs, c.lastRecords)
	return c
}

// ObserveCalculation records one calculation. Exactly one of res and err is expected
// to be set.
func (c *Collector) ObserveCalculation(res *emissions.Result, err error, elapsed time.Duration) {
	if c == nil {
		return
	}

	if err != nil || res == nil {
		c.calculations.WithLabelValues(unknownActivity, OutcomeFailed).Inc()
		c.failures.WithLabelValues(Reason(err)).Inc()
		return
	}

	activity := string(res.ActivityType)
	outcome := OutcomeOK
	if !res.FactorsKnown {
		outcome = OutcomeFactorsUnknown
	}
	c.calculations.WithLabelValues(activity, outcome).Inc()
	c.duration.WithLabelValues(activity).Observe(elapsed.Seconds())
	c.emitted.WithLabelValues(activity).Add(res.TotalCO2eTons)
}

// ObserveRun records a finished inventory run of n records.
func (c *Collector) ObserveRun(n int) {
	if c == nil {
		return
	}
	c.runs.Inc()
	c.lastRecords.Set(float64(n))
}

// Gatherer returns the collector's registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes every metric to path in the text exposition format. The file
// is written atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Reason classifies an error into a low-cardinality label value.
func Reason(err error) string {
	var verrs emissions.ValidationErrors
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, emissions.ErrFuelNotFound):
		return "fuel_not_found"
	case errors.As(err, &verrs):
		return "validation"
	case errors.Is(err, emissions.ErrInvalidQuantity),
		errors.Is(err, emissions.ErrInvalidPurposeCategory),
		errors.Is(err, emissions.ErrUnknownActivityType),
		errors.Is(err, fuel.ErrUnknownSubcategory):
		return "invalid_record"
	case errors.Is(err, emissions.ErrUnsupportedUnit):
		return "unsupported_unit"
	case errors.Is(err, emissions.ErrActivityTypeMismatch):
		return "activity_mismatch"
	case errors.Is(err, emissions.ErrInconsistentFuelDefinition):
		return "inconsistent_fuel"
	default:
		return "other"
	}
}
