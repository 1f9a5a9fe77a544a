package emissions

import (
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
	"github.com/rshade/ghg-emissions-engine/internal/units"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Per-call errors. Compare with errors.Is.
var (
	// ErrMissingPurposeCategory indicates a stationary-combustion request without a purpose.
	ErrMissingPurposeCategory = constError("missing purpose category")

	// ErrInvalidQuantity indicates a quantity that is absent, non-numeric, infinite or negative.
	ErrInvalidQuantity = constError("invalid quantity")

	// ErrActivityTypeMismatch indicates a request whose stated activity type or
	// subcategory disagrees with the fuel's definition.
	ErrActivityTypeMismatch = constError("activity type mismatch")
)

// Errors raised by the packages the calculator depends on, re-exported so callers
// only need this package to classify calculation failures.
var (
	ErrFuelNotFound               = fuel.ErrFuelNotFound
	ErrInconsistentFuelDefinition = fuel.ErrInconsistentFuelDefinition
	ErrInvalidPurposeCategory     = fuel.ErrInvalidPurposeCategory
	ErrUnknownActivityType        = fuel.ErrUnknownActivityType
	ErrUnsupportedUnit            = units.ErrUnsupportedUnit
)
