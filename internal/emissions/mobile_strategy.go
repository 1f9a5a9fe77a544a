package emissions

import "github.com/rshade/ghg-emissions-engine/internal/fuel"

// MobileStrategy computes emissions for fuels burned in vehicles, ships and aircraft.
type MobileStrategy struct{}

// Estimate applies the energy-content formula with the fuel's mobile emission
// factors in place of its declared factors. The purpose category has no effect.
func (MobileStrategy) Estimate(quantity float64, def fuel.Definition, _ fuel.Purpose) (GasMasses, error) {
	f, ok := def.Mobile()
	if !ok {
		return GasMasses{}, factorShapeError(def, fuel.MobileCombustion)
	}

	energy := energyTJ(quantity, def)
	return GasMasses{
		CO2: energy * f.Mobile.CO2,
		CH4: energy * f.Mobile.CH4,
		N2O: energy * f.Mobile.N2O,
	}, nil
}

// Formula returns the audit trace for a mobile-combustion estimate.
func (MobileStrategy) Formula(quantity float64, def fuel.Definition, _ fuel.Purpose, masses GasMasses) string {
	f, _ := def.Mobile()
	energy := formatFloat(energyTJ(quantity, def), 6)

	return "Mobile combustion: " + energyTerm(quantity, def) + "; " +
		"CO2 = " + energy + " TJ × " + formatFactor(f.Mobile.CO2) + " kg/TJ = " + formatFloat(masses.CO2, 3) + " kg; " +
		"CH4 = " + energy + " TJ × " + formatFactor(f.Mobile.CH4) + " kg/TJ = " + formatFloat(masses.CH4, 6) + " kg; " +
		"N2O = " + energy + " TJ × " + formatFactor(f.Mobile.N2O) + " kg/TJ = " + formatFloat(masses.N2O, 6) + " kg; " +
		aggregateTerm(masses)
}
