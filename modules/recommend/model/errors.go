package model

import "errors"

// ErrCatalogueUnavailable mirrors the catalogue module's sentinel so the
// recommend handler can map it without importing the catalogue package's
// error type directly in every call site.
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
