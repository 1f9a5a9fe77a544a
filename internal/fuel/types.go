// Package fuel provides the immutable registry of fuel and energy-carrier definitions
// used by the emissions engine. The registry is the source of truth for calorific values,
// emission factors and the physical unit each fuel is reported in.
package fuel

import (
	"fmt"
	"strings"
)

// ActivityType selects the calculation strategy for a fuel.
type ActivityType string

// Activity types.
const (
	StationaryCombustion ActivityType = "STATIONARY_COMBUSTION"
	MobileCombustion     ActivityType = "MOBILE_COMBUSTION"
	Electricity          ActivityType = "ELECTRICITY"
	Steam                ActivityType = "STEAM"
)

// ActivityTypes lists every activity type in display order.
var ActivityTypes = []ActivityType{StationaryCombustion, MobileCombustion, Electricity, Steam}

// ParseActivityType parses an activity type name, case-insensitively.
func ParseActivityType(s string) (ActivityType, error) {
	normalized := ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	for _, at := range ActivityTypes {
		if at == normalized {
			return at, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivityType, s)
}

// IsCombustion reports whether the activity type converts quantity through calorific value.
func (a ActivityType) IsCombustion() bool {
	return a == StationaryCombustion || a == MobileCombustion
}

// Subcategory classifies combustion fuels by physical state.
type Subcategory string

// Subcategories.
const (
	Liquid Subcategory = "LIQUID"
	Solid  Subcategory = "SOLID"
	Gas    Subcategory = "GAS"
)

// ParseSubcategory parses a subcategory name. An empty string means no subcategory.
func ParseSubcategory(s string) (Subcategory, error) {
	switch sc := Subcategory(strings.ToUpper(strings.TrimSpace(s))); sc {
	case "", Liquid, Solid, Gas:
		return sc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSubcategory, s)
	}
}

// Category is the informational classification label shown in disclosure forms.
type Category string

// Categories.
const (
	LiquidPetroleum Category = "LIQUID_PETROLEUM"
	SolidFuel       Category = "SOLID_FUEL"
	GaseousFuel     Category = "GASEOUS_FUEL"
	EnergyCarrier   Category = "ENERGY"
)

// Unit is the physical unit a fuel's usage quantity is declared in.
type Unit string

// Declared units.
const (
	UnitKiloliter      Unit = "kL"
	UnitTon            Unit = "ton"
	UnitThousandCubicM Unit = "thousand m³"
	UnitKilowattHour   Unit = "kWh"
	UnitGigajoule      Unit = "GJ"
)

// Purpose is the end-use category that selects stationary-combustion factors.
type Purpose string

// Purpose categories. The zero value means no purpose was supplied.
const (
	PurposeNone          Purpose = ""
	PurposeEnergy        Purpose = "energy"
	PurposeManufacturing Purpose = "manufacturing"
	PurposeCommercial    Purpose = "commercial"
	PurposeDomestic      Purpose = "domestic"
)

// Purposes lists every purpose category.
var Purposes = []Purpose{PurposeEnergy, PurposeManufacturing, PurposeCommercial, PurposeDomestic}

// ParsePurpose parses a purpose category, case-insensitively.
// An empty string yields PurposeNone without error.
func ParsePurpose(s string) (Purpose, error) {
	p := Purpose(strings.ToLower(strings.TrimSpace(s)))
	if p == PurposeNone {
		return PurposeNone, nil
	}
	for _, known := range Purposes {
		if p == known {
			return p, nil
		}
	}
	return PurposeNone, fmt.Errorf("%w: %q", ErrInvalidPurposeCategory, s)
}

// GasFactors holds one emission factor per gas.
type GasFactors struct {
	CO2 float64 `json:"co2" yaml:"co2"`
	CH4 float64 `json:"ch4" yaml:"ch4"`
	N2O float64 `json:"n2o" yaml:"n2o"`
}

// IsZero reports whether every factor is zero.
func (g GasFactors) IsZero() bool {
	return g.CO2 == 0 && g.CH4 == 0 && g.N2O == 0
}

// PurposeFactors holds a factor for each purpose category, in kg per TJ.
type PurposeFactors struct {
	Energy        float64 `json:"energy" yaml:"energy"`
	Manufacturing float64 `json:"manufacturing" yaml:"manufacturing"`
	Commercial    float64 `json:"commercial" yaml:"commercial"`
	Domestic      float64 `json:"domestic" yaml:"domestic"`
}

// For returns the factor for purpose p. The boolean is false when p is not a
// known purpose category.
func (pf PurposeFactors) For(p Purpose) (float64, bool) {
	switch p {
	case PurposeEnergy:
		return pf.Energy, true
	case PurposeManufacturing:
		return pf.Manufacturing, true
	case PurposeCommercial:
		return pf.Commercial, true
	case PurposeDomestic:
		return pf.Domestic, true
	default:
		return 0, false
	}
}

// Factors is the activity-specific factor set of a fuel. Exactly one variant exists per
// ActivityType; the set of implementations is closed to this package.
type Factors interface {
	ActivityType() ActivityType
	// AllZero reports whether every factor the formula reads is zero.
	AllZero() bool
	isFactors()
}

// StationaryFactors are used for stationary combustion. CO2 is kg/TJ; CH4 and N2O are
// kg/TJ keyed by purpose category.
type StationaryFactors struct {
	CO2 float64
	CH4 PurposeFactors
	N2O PurposeFactors
}

// MobileFactors are used for mobile combustion. CO2, CH4 and N2O are the factors declared
// on the fuel table; Mobile overrides them in the formula. All values are kg/TJ.
type MobileFactors struct {
	CO2    float64
	CH4    float64
	N2O    float64
	Mobile GasFactors
}

// ElectricityFactors are per-kWh factors in kg.
type ElectricityFactors struct {
	CO2 float64
	CH4 float64
	N2O float64
}

// SteamFactors holds the CO2 factor for purchased steam in metric tons per GJ.
type SteamFactors struct {
	CO2 float64
}

func (StationaryFactors) ActivityType() ActivityType  { return StationaryCombustion }
func (MobileFactors) ActivityType() ActivityType      { return MobileCombustion }
func (ElectricityFactors) ActivityType() ActivityType { return Electricity }
func (SteamFactors) ActivityType() ActivityType       { return Steam }

func (f StationaryFactors) AllZero() bool {
	return f.CO2 == 0 && f.CH4 == (PurposeFactors{}) && f.N2O == (PurposeFactors{})
}
func (f MobileFactors) AllZero() bool      { return f.Mobile.IsZero() }
func (f ElectricityFactors) AllZero() bool { return f.CO2 == 0 && f.CH4 == 0 && f.N2O == 0 }
func (f SteamFactors) AllZero() bool       { return f.CO2 == 0 }

func (StationaryFactors) isFactors()  {}
func (MobileFactors) isFactors()      {}
func (ElectricityFactors) isFactors() {}
func (SteamFactors) isFactors()       {}

// Definition describes one fuel or energy carrier.
type Definition struct {
	// ID is the unique registry key (e.g., "DIESEL").
	ID string

	// Name is the English display label.
	Name string

	// LocalName is the label used in the Korean disclosure forms.
	LocalName string

	// Category is informational and not used in calculation.
	Category Category

	// Unit is the physical unit of the usage quantity.
	Unit Unit

	// ActivityType selects the calculation strategy.
	ActivityType ActivityType

	// Subcategory is set for combustion fuels and used for registry filtering only.
	Subcategory Subcategory

	// GrossCalorificValue is GJ per Unit. Zero when not published.
	GrossCalorificValue float64

	// NetCalorificValue is GJ per Unit. Required for combustion fuels.
	NetCalorificValue float64

	// Factors carries the activity-specific emission factors.
	Factors Factors

	// FactorsKnown is false when the source table did not provide factors for this fuel,
	// as opposed to a fuel whose factors are established to be zero.
	FactorsKnown bool

	// Note is a free-form annotation from the factor table.
	Note string
}

// Stationary returns the stationary-combustion factors, if this is a stationary fuel.
func (d Definition) Stationary() (StationaryFactors, bool) {
	f, ok := d.Factors.(StationaryFactors)
	return f, ok
}

// Mobile returns the mobile-combustion factors, if this is a mobile fuel.
func (d Definition) Mobile() (MobileFactors, bool) {
	f, ok := d.Factors.(MobileFactors)
	return f, ok
}

// Electric returns the per-kWh factors, if this is an electricity entry.
func (d Definition) Electric() (ElectricityFactors, bool) {
	f, ok := d.Factors.(ElectricityFactors)
	return f, ok
}

// SteamFactor returns the steam factor, if this is a steam entry.
func (d Definition) SteamFactor() (SteamFactors, bool) {
	f, ok := d.Factors.(SteamFactors)
	return f, ok
}
