package fuel

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the registry. Compare with errors.Is.
var (
	// ErrFuelNotFound indicates an identifier that is not in the registry.
	ErrFuelNotFound = constError("fuel not found")

	// ErrInconsistentFuelDefinition indicates a table entry whose factor shape does not
	// match its activity type, or a table that fails schema validation.
	ErrInconsistentFuelDefinition = constError("inconsistent fuel definition")

	// ErrUnknownActivityType indicates an activity type name outside the known set.
	ErrUnknownActivityType = constError("unknown activity type")

	// ErrUnknownSubcategory indicates a subcategory name outside LIQUID, SOLID, GAS.
	ErrUnknownSubcategory = constError("unknown subcategory")

	// ErrInvalidPurposeCategory indicates a purpose outside energy, manufacturing,
	// commercial, domestic.
	ErrInvalidPurposeCategory = constError("invalid purpose category")
)

// NotFoundError reports the identifier a lookup failed on. It matches ErrFuelNotFound
// under errors.Is.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrFuelNotFound, e.ID)
}

// Is reports whether target is ErrFuelNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrFuelNotFound
}
