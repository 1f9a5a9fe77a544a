package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
	"github.com/rshade/ghg-emissions-engine/internal/units"
)

// Calculator resolves a fuel, validates the request, and dispatches to the strategy
// for the fuel's activity type. It holds only the immutable registry and a logger and
// is safe for concurrent use.
type Calculator struct {
	registry   *fuel.Registry
	logger     zerolog.Logger
	strategies map[fuel.ActivityType]Strategy
}

// NewCalculator creates a calculator over registry. A nil registry uses fuel.Default.
func NewCalculator(registry *fuel.Registry, logger zerolog.Logger) *Calculator {
	if registry == nil {
		registry = fuel.Default()
	}
	return &Calculator{
		registry: registry,
		logger:   logger.With().Str("component", "calculator").Logger(),
		strategies: map[fuel.ActivityType]Strategy{
			fuel.StationaryCombustion: StationaryStrategy{},
			fuel.MobileCombustion:     MobileStrategy{},
			fuel.Electricity:          ElectricityStrategy{},
			fuel.Steam:                SteamStrategy{},
		},
	}
}

// Registry returns the registry the calculator reads from.
func (c *Calculator) Registry() *fuel.Registry {
	return c.registry
}

// Calculate computes the emissions for one request.
//
// The steps are:
//  1. Resolve the fuel (ErrFuelNotFound)
//  2. Check any stated activity type and subcategory (ErrActivityTypeMismatch)
//  3. Convert the quantity to the fuel's declared unit (ErrUnsupportedUnit)
//  4. Normalize the purpose, then validate quantity and purpose (ValidationErrors)
//  5. Run the activity strategy and aggregate CO2e in tons
func (c *Calculator) Calculate(req Request) (Result, error) {
	def, err := c.registry.Lookup(req.FuelID)
	if err != nil {
		return Result{}, err
	}

	if req.ActivityType != "" && req.ActivityType != def.ActivityType {
		return Result{}, fmt.Errorf("%w: %s is %s, request states %s",
			ErrActivityTypeMismatch, def.ID, def.ActivityType, req.ActivityType)
	}
	if req.Subcategory != "" && req.Subcategory != def.Subcategory {
		return Result{}, fmt.Errorf("%w: %s has subcategory %q, request states %q",
			ErrActivityTypeMismatch, def.ID, def.Subcategory, req.Subcategory)
	}

	quantity, err := units.Convert(req.Quantity, req.Unit, string(def.Unit))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", def.ID, err)
	}

	purpose := req.Purpose
	if p, err := fuel.ParsePurpose(string(req.Purpose)); err == nil {
		purpose = p
	}

	if verrs := Validate(def.ActivityType, quantity, purpose); len(verrs) > 0 {
		return Result{}, verrs
	}

	strategy, ok := c.strategies[def.ActivityType]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownActivityType, def.ActivityType)
	}

	masses, err := strategy.Estimate(quantity, def, purpose)
	if err != nil {
		return Result{}, err
	}

	total := masses.CO2eKg() / KgPerTon
	if dt, ok := strategy.(directTotaler); ok {
		total = dt.TotalTons(quantity, def)
	}

	result := Result{
		FuelID:        def.ID,
		FuelName:      def.Name,
		ActivityType:  def.ActivityType,
		Purpose:       purpose,
		Quantity:      quantity,
		Unit:          def.Unit,
		CO2MassKg:     masses.CO2,
		CH4MassKg:     masses.CH4,
		N2OMassKg:     masses.N2O,
		TotalCO2eTons: total,
		Formula:       strategy.Formula(quantity, def, purpose, masses),
		FactorsKnown:  def.FactorsKnown,
	}
	if def.ActivityType.IsCombustion() {
		result.EnergyTJ = energyTJ(quantity, def)
	}

	c.logger.Debug().
		Str("fuel_id", def.ID).
		Str("activity_type", string(def.ActivityType)).
		Float64("quantity", quantity).
		Str("unit", string(def.Unit)).
		Float64("total_co2e_tons", total).
		Bool("factors_known", def.FactorsKnown).
		Msg("emissions calculated")

	return result, nil
}
