package inventory

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/metrics"
)

// Calculator computes one request. *emissions.Calculator satisfies it.
type Calculator interface {
	Calculate(req emissions.Request) (emissions.Result, error)
}

// Options configures a batch run.
type Options struct {
	// Concurrency bounds simultaneous calculations. Zero or less means runtime.NumCPU().
	Concurrency int

	// Logger receives per-run and per-record logs. The zero value logs nothing.
	Logger zerolog.Logger

	// Metrics records per-record counters and timings. Nil records nothing.
	Metrics *metrics.Collector
}

// Outcome is the result of one record. Exactly one of Result and Err is set.
type Outcome struct {
	Record Record            `json:"record" yaml:"record"`
	Result *emissions.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error             `json:"-" yaml:"-"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the output of Run: per-record outcomes in input order plus the summary.
type Report struct {
	Summary  Summary   `json:"summary" yaml:"summary"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

// Run calculates every record concurrently. A failing record never aborts the run; its
// error is kept on its Outcome. Cancelling ctx stops scheduling further records, marks
// the unscheduled ones with the context error, and returns the partial report with
// ctx.Err().
func Run(ctx context.Context, calc Calculator, records []Record, opts Options) (*Report, error) {
	runID := uuid.New()
	logger := opts.Logger.With().Str("run_id", runID.String()).Logger()

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	logger.Debug().
		Int("records", len(records)).
		Int("concurrency", limit).
		Msg("inventory run started")

	outcomes := make([]Outcome, len(records))
	for i, rec := range records {
		outcomes[i].Record = rec
	}

	// Workers never return errors so one failure cannot cancel the others.
	g := new(errgroup.Group)
	g.SetLimit(limit)

	scheduled := 0
	for i := range records {
		if ctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			start := time.Now()
			outcomes[i] = calculateRecord(ctx, calc, records[i], logger)
			opts.Metrics.ObserveCalculation(outcomes[i].Result, outcomes[i].Err, time.Since(start))
			return nil
		})
	}
	_ = g.Wait()

	for i := scheduled; i < len(records); i++ {
		outcomes[i].Err = ctx.Err()
		outcomes[i].Error = ctx.Err().Error()
		opts.Metrics.ObserveCalculation(nil, ctx.Err(), 0)
	}
	opts.Metrics.ObserveRun(len(records))

	report := &Report{
		Summary:  Summarize(runID, outcomes),
		Outcomes: outcomes,
	}

	logger.Info().
		Int("records", report.Summary.Records).
		Int("failed", report.Summary.Failed).
		Float64("total_co2e_tons", report.Summary.TotalCO2eTons).
		Msg("inventory run finished")

	return report, ctx.Err()
}

func calculateRecord(ctx context.Context, calc Calculator, rec Record, logger zerolog.Logger) Outcome {
	out := Outcome{Record: rec}
	if err := ctx.Err(); err != nil {
		out.Err = err
		out.Error = err.Error()
		return out
	}

	req, err := rec.Request()
	if err == nil {
		var res emissions.Result
		if res, err = calc.Calculate(req); err == nil {
			out.Result = &res
			return out
		}
	}

	logger.Warn().
		Str("record_id", rec.ID).
		Str("fuel_id", rec.FuelID).
		Err(err).
		Msg("record calculation failed")
	out.Err = err
	out.Error = err.Error()
	return out
}
