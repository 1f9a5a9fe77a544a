package emissions

import "github.com/rshade/ghg-emissions-engine/internal/fuel"

// ElectricityStrategy computes emissions for purchased electricity from per-kWh
// grid factors. No calorific conversion is applied and purpose is not used.
type ElectricityStrategy struct{}

// Estimate multiplies the kWh quantity by each per-kWh factor.
func (ElectricityStrategy) Estimate(quantity float64, def fuel.Definition, _ fuel.Purpose) (GasMasses, error) {
	f, ok := def.Electric()
	if !ok {
		return GasMasses{}, factorShapeError(def, fuel.Electricity)
	}
	return GasMasses{
		CO2: quantity * f.CO2,
		CH4: quantity * f.CH4,
		N2O: quantity * f.N2O,
	}, nil
}

// Formula returns the audit trace for an electricity estimate.
func (ElectricityStrategy) Formula(quantity float64, def fuel.Definition, _ fuel.Purpose, masses GasMasses) string {
	f, _ := def.Electric()
	q := formatFloat(quantity, 6) + " kWh"

	return "Electricity: " +
		"CO2 = " + q + " × " + formatFactor(f.CO2) + " kg/kWh = " + formatFloat(masses.CO2, 3) + " kg; " +
		"CH4 = " + q + " × " + formatFactor(f.CH4) + " kg/kWh = " + formatFloat(masses.CH4, 6) + " kg; " +
		"N2O = " + q + " × " + formatFactor(f.N2O) + " kg/kWh = " + formatFloat(masses.N2O, 6) + " kg; " +
		aggregateTerm(masses)
}
