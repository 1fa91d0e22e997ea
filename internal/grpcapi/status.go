package grpcapi

import (
	"net/http"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vat-engine/internal/problem"
)

// ErrorDomain is the ErrorInfo domain attached to every error status.
const ErrorDomain = "vat-engine"

var statusCodes = map[int]codes.Code{
	http.StatusBadRequest:          codes.InvalidArgument,
	http.StatusNotFound:            codes.NotFound,
	http.StatusMethodNotAllowed:    codes.Unimplemented,
	http.StatusInternalServerError: codes.Internal,
}

var reasons = map[string]string{
	problem.TypeValidation:       "VALIDATION_FAILED",
	problem.TypeBadRequest:       "CALCULATION_FAILED",
	problem.TypeNotFound:         "NOT_FOUND",
	problem.TypeMethodNotAllowed: "METHOD_NOT_ALLOWED",
	problem.TypeInternal:         "INTERNAL",
}

// CodeFor projects an HTTP status onto a gRPC code.
func CodeFor(httpStatus int) codes.Code {
	if c, ok := statusCodes[httpStatus]; ok {
		return c
	}
	return codes.Unknown
}

// ToStatus converts rendered problem details into a gRPC status. Validation
// diagnostics and calculation sub-errors become BadRequest field violations;
// sub-errors have an empty field.
func ToStatus(d problem.Details) *status.Status {
	st := status.New(CodeFor(d.Status), d.Title)

	info := &errdetails.ErrorInfo{
		Reason: reasons[d.Type],
		Domain: ErrorDomain,
		Metadata: map[string]string{
			"type":     d.Type,
			"instance": d.Instance,
		},
	}
	if info.Reason == "" {
		info.Reason = "UNKNOWN"
	}

	var violations []*errdetails.BadRequest_FieldViolation
	for _, field := range d.Fields.Fields() {
		for _, msg := range d.Fields.Messages(field) {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{Field: field, Description: msg})
		}
	}
	for _, msg := range d.Errors {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{Description: msg})
	}

	var (
		withDetails *status.Status
		err         error
	)
	if len(violations) > 0 {
		withDetails, err = st.WithDetails(info, &errdetails.BadRequest{FieldViolations: violations})
	} else {
		withDetails, err = st.WithDetails(info)
	}
	if err != nil {
		return st
	}
	return withDetails
}

// FieldViolations extracts the BadRequest field violations of err, if any.
func FieldViolations(err error) []*errdetails.BadRequest_FieldViolation {
	for _, d := range status.Convert(err).Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			return br.GetFieldViolations()
		}
	}
	return nil
}
