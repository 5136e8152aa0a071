package errors

import "errors"

// ErrUnknownCode is a string code representing an unknown error
// This will be used when no error code is sent by the handler
const ErrUnknownCode = "RN-000"

// ErrInternalCode is a string code representing an internal error
const ErrInternalCode = "RN-500"

// ErrBadRequestCode is a string code representing a bad request
const ErrBadRequestCode = "RN-400"

// Error is an error with a code, message and metadata
type Error struct {
	Code     string
	Message  string
	Metadata map[string]string
}

// NewError ctor
func NewError(err error, code string, metadata ...map[string]string) *Error {
	var coded *Error
	if errors.As(err, &coded) {
		if len(metadata) > 0 {
			mergeMetadatas(coded, metadata[0])
		}
		return coded
	}

	e := &Error{
		Code:    code,
		Message: err.Error(),
	}
	if len(metadata) > 0 {
		e.Metadata = metadata[0]
	}
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func mergeMetadatas(e *Error, metadata map[string]string) {
	if e.Metadata == nil {
		e.Metadata = metadata
		return
	}

	for key, value := range metadata {
		e.Metadata[key] = value
	}
}

// CodeFromError returns the code of error.
// If error is nil, return empty string.
// If error is not a coded error, returns unknown code
func CodeFromError(err error) string {
	if err == nil {
		return ""
	}

	var coded *Error
	if !errors.As(err, &coded) {
		return ErrUnknownCode
	}

	if coded == nil {
		return ""
	}

	return coded.Code
}
