// Package benchmark provides performance benchmarks for emissions calculation.
//
// Run with: go test ./test/benchmark/... -bench=. -benchmem
package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
	"github.com/rshade/ghg-emissions-engine/internal/inventory"
	"github.com/rshade/ghg-emissions-engine/internal/units"
)

const (
	// maxLatencyMs is the maximum acceptable latency for a single calculation.
	maxLatencyMs = 10

	// batchRecords is the size of the inventory used by batch benchmarks.
	batchRecords = 1000
)

func newCalculator() *emissions.Calculator {
	return emissions.NewCalculator(fuel.Default(), zerolog.Nop())
}

// BenchmarkCalculate_Stationary measures a purpose-keyed stationary calculation.
func BenchmarkCalculate_Stationary(b *testing.B) {
	calc := newCalculator()
	req := emissions.Request{FuelID: "BUNKER_C", Purpose: fuel.PurposeManufacturing, Quantity: 1250}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = calc.Calculate(req)
	}
}

// BenchmarkCalculate_Mobile measures a mobile calculation with override factors.
func BenchmarkCalculate_Mobile(b *testing.B) {
	calc := newCalculator()
	req := emissions.Request{FuelID: "DIESEL", Quantity: 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = calc.Calculate(req)
	}
}

// BenchmarkCalculate_Electricity measures a direct-factor electricity calculation.
func BenchmarkCalculate_Electricity(b *testing.B) {
	calc := newCalculator()
	req := emissions.Request{FuelID: "ELECTRICITY", Quantity: 1000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = calc.Calculate(req)
	}
}

// BenchmarkCalculate_WithUnitConversion measures a calculation that converts litres to kL.
func BenchmarkCalculate_WithUnitConversion(b *testing.B) {
	calc := newCalculator()
	req := emissions.Request{FuelID: "DIESEL", Quantity: 10000, Unit: "L"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = calc.Calculate(req)
	}
}

// BenchmarkCalculate_NotFound measures the unknown-fuel error path.
func BenchmarkCalculate_NotFound(b *testing.B) {
	calc := newCalculator()
	req := emissions.Request{FuelID: "UNOBTAINIUM", Quantity: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = calc.Calculate(req)
	}
}

// BenchmarkCalculate_Parallel measures calculations from concurrent goroutines.
func BenchmarkCalculate_Parallel(b *testing.B) {
	calc := newCalculator()
	req := emissions.Request{FuelID: "LNG", Purpose: fuel.PurposeEnergy, Quantity: 3.2}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = calc.Calculate(req)
		}
	})
}

// BenchmarkRegistryLookup measures case-insensitive fuel lookup.
func BenchmarkRegistryLookup(b *testing.B) {
	reg := fuel.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reg.Lookup("diesel")
	}
}

// BenchmarkUnitConvert measures a volume conversion between aliases.
func BenchmarkUnitConvert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = units.Convert(1500, "m3", "L")
	}
}

// BenchmarkInventoryRun measures a full batch run at several concurrency limits.
func BenchmarkInventoryRun(b *testing.B) {
	calc := newCalculator()
	records := sampleRecords(batchRecords)

	for _, limit := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("concurrency=%d", limit), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := inventory.Run(context.Background(), calc, records,
					inventory.Options{Concurrency: limit}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func sampleRecords(n int) []inventory.Record {
	templates := []inventory.Record{
		{FuelID: "DIESEL", Quantity: "10", Unit: "kL"},
		{FuelID: "BUNKER_C", Purpose: "manufacturing", Quantity: "1,000", Unit: "L"},
		{FuelID: "ELECTRICITY", Quantity: "1000"},
		{FuelID: "STEAM_A", Quantity: "5"},
	}
	records := make([]inventory.Record, n)
	for i := range records {
		records[i] = templates[i%len(templates)]
		records[i].ID = fmt.Sprintf("record-%d", i+1)
	}
	return records
}

// TestLatencyRequirement_Calculate verifies one calculation of each activity type stays
// under the latency limit.
func TestLatencyRequirement_Calculate(t *testing.T) {
	calc := newCalculator()
	// Build the registry outside the timed section.
	_ = fuel.Default()

	requests := []emissions.Request{
		{FuelID: "BUNKER_C", Purpose: fuel.PurposeDomestic, Quantity: 1},
		{FuelID: "DIESEL", Quantity: 1},
		{FuelID: "ELECTRICITY", Quantity: 1},
		{FuelID: "STEAM_B", Quantity: 1},
	}
	for _, req := range requests {
		start := time.Now()
		_, err := calc.Calculate(req)
		elapsed := time.Since(start)

		if err != nil {
			t.Fatalf("%s: %v", req.FuelID, err)
		}
		if elapsed.Milliseconds() > maxLatencyMs {
			t.Errorf("%s calculation took %v, exceeds %dms limit", req.FuelID, elapsed, maxLatencyMs)
		}
	}
}
