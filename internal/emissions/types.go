package emissions

import "github.com/rshade/ghg-emissions-engine/internal/fuel"

// Request is one calculation request as submitted by a disclosure form.
type Request struct {
	// FuelID is the registry key, matched case-insensitively.
	FuelID string `json:"fuelId" yaml:"fuelId"`

	// ActivityType and Subcategory are optional. When set they must match the fuel.
	ActivityType fuel.ActivityType `json:"activityType,omitempty" yaml:"activityType,omitempty"`
	Subcategory  fuel.Subcategory  `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`

	// Purpose selects stationary-combustion CH4/N2O factors. Required only for
	// stationary combustion.
	Purpose fuel.Purpose `json:"purposeCategory,omitempty" yaml:"purposeCategory,omitempty"`

	// Quantity is the usage amount in Unit.
	Quantity float64 `json:"quantity" yaml:"quantity"`

	// Unit is the unit of Quantity. Empty means the fuel's declared unit.
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// GasMasses holds per-gas emission masses in kilograms.
type GasMasses struct {
	CO2 float64
	CH4 float64
	N2O float64
}

// CO2eKg returns the GWP-weighted total in kilograms.
func (m GasMasses) CO2eKg() float64 {
	return CO2Equivalent(m.CO2, m.CH4, m.N2O)
}

// Result is the outcome of one calculation. Masses keep full float64 precision;
// rounding is a display concern.
type Result struct {
	FuelID       string            `json:"fuelId" yaml:"fuelId"`
	FuelName     string            `json:"fuelName" yaml:"fuelName"`
	ActivityType fuel.ActivityType `json:"activityType" yaml:"activityType"`
	Purpose      fuel.Purpose      `json:"purposeCategory,omitempty" yaml:"purposeCategory,omitempty"`

	// Quantity is expressed in Unit, the fuel's declared unit, after conversion.
	Quantity float64   `json:"quantity" yaml:"quantity"`
	Unit     fuel.Unit `json:"unit" yaml:"unit"`

	// EnergyTJ is the calorific energy for combustion fuels, zero otherwise.
	EnergyTJ float64 `json:"energyTJ,omitempty" yaml:"energyTJ,omitempty"`

	CO2MassKg     float64 `json:"co2Mass" yaml:"co2Mass"`
	CH4MassKg     float64 `json:"ch4Mass" yaml:"ch4Mass"`
	N2OMassKg     float64 `json:"n2oMass" yaml:"n2oMass"`
	TotalCO2eTons float64 `json:"totalCo2Equivalent" yaml:"totalCo2Equivalent"`

	// Formula is the human-readable trace of the computation, for audit display.
	Formula string `json:"formula" yaml:"formula"`

	// FactorsKnown is false when the fuel's factors were not provided by the source
	// table, so a zero result means missing data rather than zero emissions.
	FactorsKnown bool `json:"factorsKnown" yaml:"factorsKnown"`
}

// Masses returns the per-gas masses of the result.
func (r Result) Masses() GasMasses {
	return GasMasses{CO2: r.CO2MassKg, CH4: r.CH4MassKg, N2O: r.N2OMassKg}
}
