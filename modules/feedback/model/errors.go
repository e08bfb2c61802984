package model

import "errors"

var (
	// ErrUnknownCourse is returned when feedback is submitted for a
	// course the catalogue does not recognise.
	ErrUnknownCourse = errors.New("unknown course")

	// ErrInvalidKind is returned when kind is not positive or negative.
	ErrInvalidKind = errors.New("invalid feedback kind")
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeUnknownCourse ErrorCode = "UNKNOWN_COURSE"
	CodeInvalidKind   ErrorCode = "INVALID_KIND"
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrUnknownCourse):
		return CodeUnknownCourse
	case errors.Is(err, ErrInvalidKind):
		return CodeInvalidKind
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly error message.
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnknownCourse):
		return "Unknown course"
	case errors.Is(err, ErrInvalidKind):
		return "Feedback kind must be positive or negative"
	default:
		return "Internal server error"
	}
}
