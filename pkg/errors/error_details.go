package errors

import stderrors "errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "price must be positive".
	Message string

	// Code (required) is one of the ErrorCode values, e.g. "invalid_order".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// Is reports whether target is an ErrorDetails carrying the same code.
func (e *ErrorDetails) Is(target error) bool {
	t, ok := target.(*ErrorDetails)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ErrorCodeEquals checks whether a given `error` has a specific code anywhere in its chain.
func ErrorCodeEquals(err error, code string) bool {
	var errDetails *ErrorDetails
	if stderrors.As(err, &errDetails) && errDetails.Code == code {
		return true
	}

	var base *BaseError
	if stderrors.As(err, &base) {
		return base.IsAnyCodeEqual(code)
	}

	return false
}
