package model

import "errors"

// ErrConfigurationInvalid is fatal at startup: weights don't sum to 1,
// an unknown grade letter is missing from grade_value, or a
// generic_term_rule references a term that doesn't exist.
var ErrConfigurationInvalid = errors.New("configuration invalid")

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeConfigurationInvalid ErrorCode = "CONFIGURATION_INVALID"
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrConfigurationInvalid):
		return CodeConfigurationInvalid
	default:
		return CodeInternalError
	}
}
