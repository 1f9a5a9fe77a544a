// Package units converts caller-supplied activity quantities into the unit a fuel is
// declared in. Conversions are only defined within one dimension.
package units

import (
	"fmt"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnsupportedUnit indicates an unrecognized unit or a conversion across dimensions.
const ErrUnsupportedUnit = constError("unsupported unit")

// Dimension groups units that convert into each other.
type Dimension string

// Dimensions.
const (
	Volume         Dimension = "volume"
	GasVolume      Dimension = "gas volume"
	Mass           Dimension = "mass"
	ElectricEnergy Dimension = "electric energy"
	HeatEnergy     Dimension = "heat energy"
)

// unitDef scales a unit to the smallest unit of its dimension (L, m³, kg, Wh, MJ).
// Integer scales keep conversions between exactly representable quantities exact.
// A unit with gas set also measures gas volume and takes that reading when the other
// side of a conversion is a gas volume.
type unitDef struct {
	canonical string
	dim       Dimension
	scale     float64
	gas       *unitDef
}

var (
	liter          = unitDef{canonical: "L", dim: Volume, scale: 1}
	kiloliter      = unitDef{canonical: "kL", dim: Volume, scale: 1_000}
	gasCubicMeter  = unitDef{canonical: "m³", dim: GasVolume, scale: 1}
	cubicMeter     = unitDef{canonical: "m³", dim: Volume, scale: 1_000, gas: &gasCubicMeter}
	normalCubicM   = unitDef{canonical: "Nm³", dim: GasVolume, scale: 1}
	thousandCubicM = unitDef{canonical: "thousand m³", dim: GasVolume, scale: 1_000}
	kilogram       = unitDef{canonical: "kg", dim: Mass, scale: 1}
	ton            = unitDef{canonical: "ton", dim: Mass, scale: 1_000}
	wattHour       = unitDef{canonical: "Wh", dim: ElectricEnergy, scale: 1}
	kilowattHour   = unitDef{canonical: "kWh", dim: ElectricEnergy, scale: 1_000}
	megawattHour   = unitDef{canonical: "MWh", dim: ElectricEnergy, scale: 1_000_000}
	gigawattHour   = unitDef{canonical: "GWh", dim: ElectricEnergy, scale: 1_000_000_000}
	megajoule      = unitDef{canonical: "MJ", dim: HeatEnergy, scale: 1}
	gigajoule      = unitDef{canonical: "GJ", dim: HeatEnergy, scale: 1_000}
	terajoule      = unitDef{canonical: "TJ", dim: HeatEnergy, scale: 1_000_000}
)

// aliases maps lower-cased spellings to unit definitions.
var aliases = map[string]unitDef{
	"l":           liter,
	"liter":       liter,
	"litre":       liter,
	"kl":          kiloliter,
	"kiloliter":   kiloliter,
	"m3":          cubicMeter,
	"m³":          cubicMeter,
	"nm3":         normalCubicM,
	"nm³":         normalCubicM,
	"thousand m³": thousandCubicM,
	"thousand m3": thousandCubicM,
	"천m³":         thousandCubicM,
	"천m3":         thousandCubicM,
	"1000m³":      thousandCubicM,
	"1000m3":      thousandCubicM,
	"kg":          kilogram,
	"ton":         ton,
	"tons":        ton,
	"t":           ton,
	"tonne":       ton,
	"wh":          wattHour,
	"kwh":         kilowattHour,
	"mwh":         megawattHour,
	"gwh":         gigawattHour,
	"mj":          megajoule,
	"gj":          gigajoule,
	"tj":          terajoule,
}

func lookup(unit string) (unitDef, bool) {
	def, ok := aliases[strings.ToLower(strings.TrimSpace(unit))]
	return def, ok
}

// resolveGas switches m³ to its gas-volume reading when the other unit is a gas volume.
func resolveGas(src, dst unitDef) (unitDef, unitDef) {
	if src.gas != nil && dst.dim == GasVolume {
		src = *src.gas
	}
	if dst.gas != nil && src.dim == GasVolume {
		dst = *dst.gas
	}
	return src, dst
}

// Canonical returns the canonical spelling and dimension of unit.
func Canonical(unit string) (string, Dimension, error) {
	def, ok := lookup(unit)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	}
	return def.canonical, def.dim, nil
}

// IsRecognized reports whether unit is a known spelling.
func IsRecognized(unit string) bool {
	_, ok := lookup(unit)
	return ok
}

// Convert converts quantity from unit from into unit to. An empty from means the
// quantity is already expressed in to and is returned unchanged.
func Convert(quantity float64, from, to string) (float64, error) {
	if strings.TrimSpace(from) == "" {
		return quantity, nil
	}
	src, ok := lookup(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, from)
	}
	dst, ok := lookup(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, to)
	}
	src, dst = resolveGas(src, dst)
	if src.dim != dst.dim {
		return 0, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
			ErrUnsupportedUnit, src.canonical, src.dim, dst.canonical, dst.dim)
	}
	if src.scale == dst.scale {
		return quantity, nil
	}
	return quantity * src.scale / dst.scale, nil
}
