package emissions

import (
	"fmt"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

// StationaryStrategy computes emissions for fuels burned in fixed installations.
type StationaryStrategy struct{}

// Estimate applies the Tier-1 energy-content formula:
//  1. Energy (TJ) = quantity × NCV (GJ/unit) ÷ 1000
//  2. CO2 (kg) = Energy × CO2 factor (kg/TJ)
//  3. CH4, N2O (kg) = Energy × factor for the purpose category (kg/TJ)
//
// Fuels with a zero CO2 factor are biomass reported as carbon neutral.
func (StationaryStrategy) Estimate(quantity float64, def fuel.Definition, purpose fuel.Purpose) (GasMasses, error) {
	f, ok := def.Stationary()
	if !ok {
		return GasMasses{}, factorShapeError(def, fuel.StationaryCombustion)
	}
	ch4, ok := f.CH4.For(purpose)
	if !ok {
		return GasMasses{}, fmt.Errorf("%w: %s is stationary combustion", ErrMissingPurposeCategory, def.ID)
	}
	n2o, _ := f.N2O.For(purpose)

	energy := energyTJ(quantity, def)
	return GasMasses{
		CO2: energy * f.CO2,
		CH4: energy * ch4,
		N2O: energy * n2o,
	}, nil
}

// Formula returns the audit trace for a stationary-combustion estimate.
func (StationaryStrategy) Formula(quantity float64, def fuel.Definition, purpose fuel.Purpose, masses GasMasses) string {
	f, _ := def.Stationary()
	ch4, _ := f.CH4.For(purpose)
	n2o, _ := f.N2O.For(purpose)
	energy := formatFloat(energyTJ(quantity, def), 6)

	return "Stationary combustion (" + string(purpose) + "): " + energyTerm(quantity, def) + "; " +
		"CO2 = " + energy + " TJ × " + formatFactor(f.CO2) + " kg/TJ = " + formatFloat(masses.CO2, 3) + " kg; " +
		"CH4 = " + energy + " TJ × " + formatFactor(ch4) + " kg/TJ = " + formatFloat(masses.CH4, 6) + " kg; " +
		"N2O = " + energy + " TJ × " + formatFactor(n2o) + " kg/TJ = " + formatFloat(masses.N2O, 6) + " kg; " +
		aggregateTerm(masses)
}
