package emissions

import (
	"fmt"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

// Strategy computes per-gas emission masses for one activity type.
type Strategy interface {
	// Estimate returns masses in kilograms for quantity, expressed in the fuel's
	// declared unit. Inputs are already validated.
	Estimate(quantity float64, def fuel.Definition, purpose fuel.Purpose) (GasMasses, error)

	// Formula describes the computation Estimate performed.
	Formula(quantity float64, def fuel.Definition, purpose fuel.Purpose, masses GasMasses) string
}

// directTotaler is implemented by strategies whose factor already yields the
// CO2-equivalent total in tons, bypassing GWP aggregation.
type directTotaler interface {
	TotalTons(quantity float64, def fuel.Definition) float64
}

// energyTJ converts a combustion quantity to terajoules through net calorific value.
func energyTJ(quantity float64, def fuel.Definition) float64 {
	return quantity * def.NetCalorificValue / GJPerTJ
}

func factorShapeError(def fuel.Definition, want fuel.ActivityType) error {
	got := "none"
	if def.Factors != nil {
		got = string(def.Factors.ActivityType())
	}
	return fmt.Errorf("%w: %s: expected %s factors, got %s",
		fuel.ErrInconsistentFuelDefinition, def.ID, want, got)
}

// energyTerm renders the calorific conversion shared by combustion formulas.
func energyTerm(quantity float64, def fuel.Definition) string {
	return formatFloat(quantity, 6) + " " + string(def.Unit) + " × " +
		formatFactor(def.NetCalorificValue) + " GJ/" + string(def.Unit) +
		" ÷ 1000 = " + formatFloat(energyTJ(quantity, def), 6) + " TJ"
}

// aggregateTerm renders the GWP aggregation step.
func aggregateTerm(masses GasMasses) string {
	return "CO2e = (CO2 + CH4 × " + formatFactor(GWPCH4) + " + N2O × " + formatFactor(GWPN2O) +
		") ÷ 1000 = " + formatFloat(masses.CO2eKg()/KgPerTon, 3) + " t"
}
