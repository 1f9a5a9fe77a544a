package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

func TestObserveCalculation(t *testing.T) {
	c := New()

	steam := &emissions.Result{ActivityType: fuel.Steam, TotalCO2eTons: 282.26, FactorsKnown: true}
	biogas := &emissions.Result{ActivityType: fuel.StationaryCombustion, FactorsKnown: false}

	c.ObserveCalculation(steam, nil, time.Millisecond)
	c.ObserveCalculation(steam, nil, time.Millisecond)
	c.ObserveCalculation(biogas, nil, time.Millisecond)
	c.ObserveCalculation(nil, &fuel.NotFoundError{ID: "NOPE"}, 0)

	assert.InDelta(t, 2, testutil.ToFloat64(c.calculations.WithLabelValues(string(fuel.Steam), OutcomeOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		c.calculations.WithLabelValues(string(fuel.StationaryCombustion), OutcomeFactorsUnknown)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.calculations.WithLabelValues(unknownActivity, OutcomeFailed)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.failures.WithLabelValues("fuel_not_found")), 0)
	assert.InDelta(t, 564.52, testutil.ToFloat64(c.emitted.WithLabelValues(string(fuel.Steam))), 1e-9)
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))
}

func TestObserveRun(t *testing.T) {
	c := New()
	c.ObserveRun(4)
	c.ObserveRun(7)

	assert.InDelta(t, 2, testutil.ToFloat64(c.runs), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(c.lastRecords), 0)
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveCalculation(nil, context.Canceled, 0)
		c.ObserveRun(1)
	})
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: "none"},
		{err: context.Canceled, want: "cancelled"},
		{err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded), want: "cancelled"},
		{err: &fuel.NotFoundError{ID: "X"}, want: "fuel_not_found"},
		{err: emissions.ValidationErrors{{Field: emissions.FieldQuantity, Err: emissions.ErrInvalidQuantity}}, want: "validation"},
		{err: fmt.Errorf("%w: ten", emissions.ErrInvalidQuantity), want: "invalid_record"},
		{err: fmt.Errorf("L: %w", emissions.ErrUnsupportedUnit), want: "unsupported_unit"},
		{err: emissions.ErrActivityTypeMismatch, want: "activity_mismatch"},
		{err: emissions.ErrInconsistentFuelDefinition, want: "inconsistent_fuel"},
		{err: os.ErrNotExist, want: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Reason(tt.err))
		})
	}
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.ObserveCalculation(&emissions.Result{ActivityType: fuel.Electricity, TotalCO2eTons: 0.5, FactorsKnown: true}, nil, time.Microsecond)
	c.ObserveRun(1)

	path := filepath.Join(t.TempDir(), "ghg.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `ghg_calculations_total{activity_type="ELECTRICITY",outcome="ok"} 1`)
	assert.Contains(t, out, "ghg_inventory_runs_total 1")
	assert.True(t, strings.HasPrefix(out, "# HELP"))

	err = c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "ghg.prom"))
	require.Error(t, err)
}
