// Package apierr translates calculation errors into gRPC status values for the API
// layer and CLI error output.
package apierr

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/protoadapt"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

// Domain is the ErrorInfo domain attached to every status.
const Domain = "ghg-emissions-engine"

// Error reasons carried in errdetails.ErrorInfo.
const (
	ReasonFuelNotFound               = "FUEL_NOT_FOUND"
	ReasonMissingPurposeCategory     = "MISSING_PURPOSE_CATEGORY"
	ReasonInvalidPurposeCategory     = "INVALID_PURPOSE_CATEGORY"
	ReasonInvalidQuantity            = "INVALID_QUANTITY"
	ReasonActivityTypeMismatch       = "ACTIVITY_TYPE_MISMATCH"
	ReasonUnsupportedUnit            = "UNSUPPORTED_UNIT"
	ReasonUnknownActivityType        = "UNKNOWN_ACTIVITY_TYPE"
	ReasonUnknownSubcategory         = "UNKNOWN_SUBCATEGORY"
	ReasonInconsistentFuelDefinition = "INCONSISTENT_FUEL_DEFINITION"
	ReasonValidationFailed           = "VALIDATION_FAILED"
)

// classification maps sentinel errors to a status code and reason, checked in order.
var classification = []struct {
	err    error
	code   codes.Code
	reason string
}{
	{emissions.ErrFuelNotFound, codes.NotFound, ReasonFuelNotFound},
	{emissions.ErrInconsistentFuelDefinition, codes.Internal, ReasonInconsistentFuelDefinition},
	{emissions.ErrActivityTypeMismatch, codes.InvalidArgument, ReasonActivityTypeMismatch},
	{emissions.ErrUnsupportedUnit, codes.InvalidArgument, ReasonUnsupportedUnit},
	{emissions.ErrUnknownActivityType, codes.InvalidArgument, ReasonUnknownActivityType},
	{fuel.ErrUnknownSubcategory, codes.InvalidArgument, ReasonUnknownSubcategory},
	{emissions.ErrMissingPurposeCategory, codes.InvalidArgument, ReasonMissingPurposeCategory},
	{emissions.ErrInvalidPurposeCategory, codes.InvalidArgument, ReasonInvalidPurposeCategory},
	{emissions.ErrInvalidQuantity, codes.InvalidArgument, ReasonInvalidQuantity},
}

// Status converts err into a gRPC status with structured details:
//   - ErrFuelNotFound: NotFound with ResourceInfo
//   - ValidationErrors: InvalidArgument with BadRequest field violations
//   - unit, activity type and input errors: InvalidArgument
//   - ErrInconsistentFuelDefinition: Internal
//   - context errors: Canceled or DeadlineExceeded
//   - anything else: Unknown
//
// A nil error yields an OK status.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	}

	var verrs emissions.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(verrs))
		for _, fe := range verrs {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field:       fe.Field,
				Description: fe.Err.Error(),
			})
		}
		return withDetails(codes.InvalidArgument, err.Error(),
			errorInfo(ReasonValidationFailed, nil),
			&errdetails.BadRequest{FieldViolations: violations})
	}

	for _, c := range classification {
		if !errors.Is(err, c.err) {
			continue
		}
		if c.code == codes.NotFound {
			var nf *fuel.NotFoundError
			resource := &errdetails.ResourceInfo{ResourceType: "fuel", Description: err.Error()}
			meta := map[string]string{}
			if errors.As(err, &nf) {
				resource.ResourceName = nf.ID
				meta["fuel_id"] = nf.ID
			}
			return withDetails(c.code, err.Error(), errorInfo(c.reason, meta), resource)
		}
		return withDetails(c.code, err.Error(), errorInfo(c.reason, nil))
	}

	return status.New(codes.Unknown, err.Error())
}

// Err returns Status(err) as an error, or nil for a nil error.
func Err(err error) error {
	if err == nil {
		return nil
	}
	return Status(err).Err()
}

// JSON renders the status for err, including its details, as protojson.
func JSON(err error) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(Status(err).Proto())
}

func errorInfo(reason string, meta map[string]string) *errdetails.ErrorInfo {
	if len(meta) == 0 {
		meta = nil
	}
	return &errdetails.ErrorInfo{Reason: reason, Domain: Domain, Metadata: meta}
}

func withDetails(code codes.Code, msg string, details ...protoadapt.MessageV1) *status.Status {
	st := status.New(code, msg)
	stWithDetails, err := st.WithDetails(details...)
	if err != nil {
		// Fallback if details cannot be attached (unlikely)
		return st
	}
	return stWithDetails
}
