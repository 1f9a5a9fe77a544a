// Package emissions converts fuel and energy consumption into greenhouse-gas emissions
// using the IPCC Tier-1 methodology: activity level × default emission factor, with CH4
// and N2O normalized to CO2-equivalent through global warming potentials.
package emissions

const (
	// GWPCH4 is the 100-year global warming potential of methane.
	// Source: IPCC Second Assessment Report, as used by the national factor tables.
	GWPCH4 = 21.0

	// GWPN2O is the 100-year global warming potential of nitrous oxide.
	// Source: IPCC Second Assessment Report.
	GWPN2O = 310.0

	// KgPerTon converts kilograms to metric tons.
	KgPerTon = 1000.0

	// GJPerTJ converts calorific energy in gigajoules to terajoules.
	GJPerTJ = 1000.0
)

// CO2Equivalent weights CH4 and N2O by their GWP and adds them to CO2.
// The result is in the same mass unit as the inputs.
func CO2Equivalent(co2, ch4, n2o float64) float64 {
	return co2 + ch4*GWPCH4 + n2o*GWPN2O
}
