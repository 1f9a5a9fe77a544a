package emissions

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(fuel.Default(), zerolog.Nop())
}

// TestCalculate_Diesel verifies the mobile combustion worked example.
func TestCalculate_Diesel(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Calculate(Request{FuelID: "DIESEL", Quantity: 10})
	require.NoError(t, err)

	assert.Equal(t, fuel.MobileCombustion, result.ActivityType)
	assert.Equal(t, fuel.UnitKiloliter, result.Unit)
	assert.InDelta(t, 0.353, result.EnergyTJ, 1e-12)
	assert.InDelta(t, 26157.3, result.CO2MassKg, 1e-6)
	assert.InDelta(t, 1.3767, result.CH4MassKg, 1e-9)
	assert.InDelta(t, 1.3767, result.N2OMassKg, 1e-9)

	wantTotal := (26157.3 + 1.3767*21 + 1.3767*310) / 1000
	assert.InDelta(t, wantTotal, result.TotalCO2eTons, 1e-9)
	assert.InDelta(t, 26.61, result.TotalCO2eTons, 0.01)
	assert.True(t, result.FactorsKnown)

	assert.Contains(t, result.Formula, "Mobile combustion")
	assert.Contains(t, result.Formula, "35.3 GJ/kL")
	assert.Contains(t, result.Formula, "0.353 TJ")
	assert.Contains(t, result.Formula, "74100 kg/TJ")
}

// TestCalculate_Electricity verifies the per-kWh path bypasses calorific conversion.
func TestCalculate_Electricity(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Calculate(Request{FuelID: "ELECTRICITY", Quantity: 1000})
	require.NoError(t, err)

	assert.InDelta(t, 465.3, result.CO2MassKg, 1e-9)
	assert.InDelta(t, 5.4e-3, result.CH4MassKg, 1e-12)
	assert.InDelta(t, 2.7e-3, result.N2OMassKg, 1e-12)
	assert.Zero(t, result.EnergyTJ)
	assert.InDelta(t, 0.4653+(5.4e-3*21+2.7e-3*310)/1000, result.TotalCO2eTons, 1e-12)
	assert.Contains(t, result.Formula, "kg/kWh")
}

// TestCalculate_Steam verifies the steam factor yields the total directly.
func TestCalculate_Steam(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Calculate(Request{FuelID: "STEAM_A", Quantity: 5})
	require.NoError(t, err)

	assert.InDelta(t, 282.26, result.TotalCO2eTons, 1e-9)
	assert.InDelta(t, 282260, result.CO2MassKg, 1e-6)
	assert.Zero(t, result.CH4MassKg)
	assert.Zero(t, result.N2OMassKg)
	assert.Equal(t, "Steam: CO2e = 5 GJ × 56.452 t/GJ = 282.26 t", result.Formula)
}

func TestCalculate_Stationary(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name    string
		purpose fuel.Purpose
		wantCH4 float64
		wantN2O float64
	}{
		{name: "energy", purpose: fuel.PurposeEnergy, wantCH4: 0.0392 * 3, wantN2O: 0.0392 * 0.6},
		{name: "manufacturing", purpose: fuel.PurposeManufacturing, wantCH4: 0.0392 * 3, wantN2O: 0.0392 * 0.6},
		{name: "commercial", purpose: fuel.PurposeCommercial, wantCH4: 0.0392 * 10, wantN2O: 0.0392 * 0.6},
		{name: "domestic", purpose: fuel.PurposeDomestic, wantCH4: 0.0392 * 10, wantN2O: 0.0392 * 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Calculate(Request{FuelID: "BUNKER_C", Quantity: 1, Purpose: tt.purpose})
			require.NoError(t, err)
			assert.InDelta(t, 0.0392, result.EnergyTJ, 1e-12)
			assert.InDelta(t, 0.0392*77400, result.CO2MassKg, 1e-9)
			assert.InDelta(t, tt.wantCH4, result.CH4MassKg, 1e-12)
			assert.InDelta(t, tt.wantN2O, result.N2OMassKg, 1e-12)
			assert.InDelta(t, CO2Equivalent(result.CO2MassKg, result.CH4MassKg, result.N2OMassKg)/1000,
				result.TotalCO2eTons, 1e-12)
			assert.Contains(t, result.Formula, "Stationary combustion ("+string(tt.purpose)+")")
		})
	}
}

func TestCalculate_MobileUsesOverrideFactors(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Calculate(Request{FuelID: "GASOLINE", Quantity: 1})
	require.NoError(t, err)

	// The table declares CH4 3 kg/TJ; the mobile override is 33 kg/TJ.
	assert.InDelta(t, 0.0301*33, result.CH4MassKg, 1e-12)
	assert.InDelta(t, 0.0301*3.2, result.N2OMassKg, 1e-12)
}

func TestCalculate_MobileIgnoresPurpose(t *testing.T) {
	calc := newTestCalculator(t)

	base, err := calc.Calculate(Request{FuelID: "DIESEL", Quantity: 10})
	require.NoError(t, err)

	for _, p := range fuel.Purposes {
		t.Run(string(p), func(t *testing.T) {
			got, err := calc.Calculate(Request{FuelID: "DIESEL", Quantity: 10, Purpose: p})
			require.NoError(t, err)
			assert.Equal(t, base.Masses(), got.Masses())
			assert.Equal(t, base.TotalCO2eTons, got.TotalCO2eTons)
		})
	}
}

func TestCalculate_PurposeNotRequiredOutsideStationary(t *testing.T) {
	calc := newTestCalculator(t)

	for _, id := range []string{"ELECTRICITY", "STEAM_A", "STEAM_B", "STEAM_C", "DIESEL", "JET_FUEL"} {
		t.Run(id, func(t *testing.T) {
			_, err := calc.Calculate(Request{FuelID: id, Quantity: 1})
			assert.NoError(t, err)
		})
	}
}

func TestCalculate_UnitConversion(t *testing.T) {
	calc := newTestCalculator(t)

	inKL, err := calc.Calculate(Request{FuelID: "DIESEL", Quantity: 10})
	require.NoError(t, err)
	inL, err := calc.Calculate(Request{FuelID: "DIESEL", Quantity: 10_000, Unit: "L"})
	require.NoError(t, err)

	assert.Equal(t, inKL.Quantity, inL.Quantity)
	assert.InDelta(t, inKL.TotalCO2eTons, inL.TotalCO2eTons, 1e-12)

	mwh, err := calc.Calculate(Request{FuelID: "ELECTRICITY", Quantity: 1, Unit: "MWh"})
	require.NoError(t, err)
	assert.InDelta(t, 465.3, mwh.CO2MassKg, 1e-9)
	assert.InDelta(t, 1000, mwh.Quantity, 1e-12)
}

func TestCalculate_NormalizesPurpose(t *testing.T) {
	calc := newTestCalculator(t)

	want, err := calc.Calculate(Request{FuelID: "BUNKER_C", Quantity: 1, Purpose: fuel.PurposeEnergy})
	require.NoError(t, err)

	for _, purpose := range []fuel.Purpose{"Energy", " energy", "ENERGY\t"} {
		t.Run(string(purpose), func(t *testing.T) {
			got, err := calc.Calculate(Request{FuelID: "BUNKER_C", Quantity: 1, Purpose: purpose})
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, fuel.PurposeEnergy, got.Purpose)
		})
	}
}

func TestCalculate_GasVolumeUnits(t *testing.T) {
	calc := newTestCalculator(t)

	inThousand, err := calc.Calculate(Request{FuelID: "CNG", Quantity: 2})
	require.NoError(t, err)
	inCubic, err := calc.Calculate(Request{FuelID: "CNG", Quantity: 2_000, Unit: "m3"})
	require.NoError(t, err)
	assert.InDelta(t, inThousand.Quantity, inCubic.Quantity, 1e-12)
	assert.InDelta(t, inThousand.TotalCO2eTons, inCubic.TotalCO2eTons, 1e-12)

	_, err = calc.Calculate(Request{FuelID: "CNG", Quantity: 1_000, Unit: "kL"})
	assert.ErrorIs(t, err, ErrUnsupportedUnit)

	_, err = calc.Calculate(Request{FuelID: "DIESEL", Quantity: 1, Unit: "thousand m³"})
	assert.ErrorIs(t, err, ErrUnsupportedUnit)
}

func TestCalculate_Errors(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "unknown fuel", req: Request{FuelID: "UNOBTAINIUM", Quantity: 1}, wantErr: ErrFuelNotFound},
		{name: "empty fuel id", req: Request{Quantity: 1}, wantErr: ErrFuelNotFound},
		{
			name:    "stationary without purpose",
			req:     Request{FuelID: "BUNKER_C", Quantity: 1},
			wantErr: ErrMissingPurposeCategory,
		},
		{
			name:    "stationary with unknown purpose",
			req:     Request{FuelID: "BUNKER_C", Quantity: 1, Purpose: "agricultural"},
			wantErr: ErrInvalidPurposeCategory,
		},
		{name: "negative quantity", req: Request{FuelID: "DIESEL", Quantity: -1}, wantErr: ErrInvalidQuantity},
		{name: "NaN quantity", req: Request{FuelID: "DIESEL", Quantity: math.NaN()}, wantErr: ErrInvalidQuantity},
		{name: "infinite quantity", req: Request{FuelID: "STEAM_A", Quantity: math.Inf(1)}, wantErr: ErrInvalidQuantity},
		{
			name:    "activity type mismatch",
			req:     Request{FuelID: "DIESEL", ActivityType: fuel.StationaryCombustion, Quantity: 1},
			wantErr: ErrActivityTypeMismatch,
		},
		{
			name:    "subcategory mismatch",
			req:     Request{FuelID: "DIESEL", Subcategory: fuel.Solid, Quantity: 1},
			wantErr: ErrActivityTypeMismatch,
		},
		{
			name:    "cross-dimension unit",
			req:     Request{FuelID: "DIESEL", Quantity: 1, Unit: "kWh"},
			wantErr: ErrUnsupportedUnit,
		},
		{
			name:    "unknown unit",
			req:     Request{FuelID: "DIESEL", Quantity: 1, Unit: "barrel"},
			wantErr: ErrUnsupportedUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Calculate(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, Result{}, result, "errors never yield a partial result")
		})
	}
}

func TestCalculate_ReportsAllViolations(t *testing.T) {
	calc := newTestCalculator(t)

	_, err := calc.Calculate(Request{FuelID: "BUNKER_C", Quantity: -5})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, FieldQuantity, verrs[0].Field)
	assert.Equal(t, FieldPurpose, verrs[1].Field)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.ErrorIs(t, err, ErrMissingPurposeCategory)
}

func TestCalculate_ZeroQuantity(t *testing.T) {
	calc := newTestCalculator(t)

	for _, def := range calc.Registry().All() {
		for _, p := range fuel.Purposes {
			t.Run(def.ID+"/"+string(p), func(t *testing.T) {
				result, err := calc.Calculate(Request{FuelID: def.ID, Quantity: 0, Purpose: p})
				require.NoError(t, err)
				assert.Equal(t, GasMasses{}, result.Masses())
				assert.Zero(t, result.TotalCO2eTons)
			})
		}
	}
}

func TestCalculate_AllZeroFactorFuels(t *testing.T) {
	calc := newTestCalculator(t)

	found := 0
	for _, def := range calc.Registry().All() {
		if !def.Factors.AllZero() {
			continue
		}
		found++
		t.Run(def.ID, func(t *testing.T) {
			for _, q := range []float64{0, 1, 12.5, 1e6} {
				result, err := calc.Calculate(Request{FuelID: def.ID, Quantity: q, Purpose: fuel.PurposeEnergy})
				require.NoError(t, err)
				assert.Zero(t, result.TotalCO2eTons)
			}
		})
	}
	assert.Positive(t, found, "embedded table should carry all-zero entries")
}

func TestCalculate_Linearity(t *testing.T) {
	calc := newTestCalculator(t)

	for _, def := range calc.Registry().All() {
		t.Run(def.ID, func(t *testing.T) {
			req := Request{FuelID: def.ID, Quantity: 3.7, Purpose: fuel.PurposeCommercial}
			single, err := calc.Calculate(req)
			require.NoError(t, err)

			req.Quantity *= 2
			double, err := calc.Calculate(req)
			require.NoError(t, err)

			assert.Equal(t, 2*single.CO2MassKg, double.CO2MassKg)
			assert.Equal(t, 2*single.CH4MassKg, double.CH4MassKg)
			assert.Equal(t, 2*single.N2OMassKg, double.N2OMassKg)
			assert.Equal(t, 2*single.TotalCO2eTons, double.TotalCO2eTons)
		})
	}
}

func TestCalculate_FactorsKnownPropagates(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Calculate(Request{FuelID: "BIOGAS", Quantity: 10, Purpose: fuel.PurposeEnergy})
	require.NoError(t, err)
	assert.False(t, result.FactorsKnown)
	assert.Zero(t, result.TotalCO2eTons)
}

func TestCO2Equivalent(t *testing.T) {
	assert.Equal(t, 0.0, CO2Equivalent(0, 0, 0))
	assert.Equal(t, 100.0, CO2Equivalent(100, 0, 0))
	assert.Equal(t, 21.0, CO2Equivalent(0, 1, 0))
	assert.Equal(t, 310.0, CO2Equivalent(0, 0, 1))
	assert.Equal(t, 431.0, CO2Equivalent(100, 1, 1))
}
