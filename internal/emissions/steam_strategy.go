package emissions

import "github.com/rshade/ghg-emissions-engine/internal/fuel"

// SteamStrategy computes emissions for purchased steam. The steam factor is already
// tons CO2 per GJ, so the total is taken directly without GWP aggregation.
type SteamStrategy struct{}

// TotalTons returns quantity (GJ) × factor (t/GJ).
func (SteamStrategy) TotalTons(quantity float64, def fuel.Definition) float64 {
	f, _ := def.SteamFactor()
	return quantity * f.CO2
}

// Estimate reports the CO2 mass in kilograms. CH4 and N2O are zero for every steam type.
func (s SteamStrategy) Estimate(quantity float64, def fuel.Definition, _ fuel.Purpose) (GasMasses, error) {
	if _, ok := def.SteamFactor(); !ok {
		return GasMasses{}, factorShapeError(def, fuel.Steam)
	}
	return GasMasses{CO2: s.TotalTons(quantity, def) * KgPerTon}, nil
}

// Formula returns the audit trace for a steam estimate.
func (s SteamStrategy) Formula(quantity float64, def fuel.Definition, _ fuel.Purpose, _ GasMasses) string {
	f, _ := def.SteamFactor()
	return "Steam: CO2e = " + formatFloat(quantity, 6) + " GJ × " + formatFactor(f.CO2) +
		" t/GJ = " + formatFloat(s.TotalTons(quantity, def), 3) + " t"
}
