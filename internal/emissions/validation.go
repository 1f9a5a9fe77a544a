package emissions

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

// Field names reported in validation errors.
const (
	FieldQuantity = "quantity"
	FieldPurpose  = "purposeCategory"
)

// FieldError is a validation failure on one request field.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e FieldError) Unwrap() error { return e.Err }

// ValidationErrors collects every violation found in a request. It is returned as a
// whole so a form can show all problems at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes each violation to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, fe := range v {
		errs[i] = fe
	}
	return errs
}

// Validate checks that a request supplies what its activity type requires.
// It returns nil when the request is valid.
//
//   - quantity must be a finite, non-negative number; zero is valid
//   - purpose is required for stationary combustion and must be a known category there
//   - purpose is ignored by every other activity type
func Validate(activity fuel.ActivityType, quantity float64, purpose fuel.Purpose) ValidationErrors {
	var errs ValidationErrors

	switch {
	case math.IsNaN(quantity) || math.IsInf(quantity, 0):
		errs = append(errs, FieldError{Field: FieldQuantity,
			Err: fmt.Errorf("%w: %v is not a finite number", ErrInvalidQuantity, quantity)})
	case quantity < 0:
		errs = append(errs, FieldError{Field: FieldQuantity,
			Err: fmt.Errorf("%w: %v is negative", ErrInvalidQuantity, quantity)})
	}

	if activity == fuel.StationaryCombustion {
		if purpose == fuel.PurposeNone {
			errs = append(errs, FieldError{Field: FieldPurpose,
				Err: fmt.Errorf("%w: required for %s", ErrMissingPurposeCategory, activity)})
		} else if _, err := fuel.ParsePurpose(string(purpose)); err != nil {
			errs = append(errs, FieldError{Field: FieldPurpose, Err: err})
		}
	}

	return errs
}

// ParseQuantity parses a quantity typed into a form. Surrounding space and thousands
// separators are accepted; blank, non-numeric and non-finite input is rejected.
func ParseQuantity(s string) (float64, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if trimmed == "" {
		return 0, fmt.Errorf("%w: quantity is required", ErrInvalidQuantity)
	}
	q, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidQuantity, s)
	}
	return q, nil
}

// ParsePurpose parses a purpose category. Blank input means no purpose.
func ParsePurpose(s string) (fuel.Purpose, error) {
	return fuel.ParsePurpose(s)
}
