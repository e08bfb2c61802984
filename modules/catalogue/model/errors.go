package model

import "errors"

// ErrCatalogueUnavailable is request-fatal: surfaced to the caller with
// no partial result, per the catalogue store's fail-request policy.
var ErrCatalogueUnavailable = errors.New("catalogue unavailable")

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeCatalogueUnavailable ErrorCode = "CATALOGUE_UNAVAILABLE"
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrCatalogueUnavailable):
		return CodeCatalogueUnavailable
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly error message.
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrCatalogueUnavailable):
		return "The course catalogue is temporarily unavailable"
	default:
		return "Internal server error"
	}
}
