// internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies the category of a failure surfaced to callers
type Code string

const (
	// CodeInvalidListType means the URL's site has no listing strategy.
	CodeInvalidListType Code = "INVALID_LIST_TYPE"
	// CodeInvalidListPage means the URL is malformed or a page could not be fetched or understood.
	CodeInvalidListPage Code = "INVALID_LIST_PAGE"
	// CodeInvalidFileExtension means a history file has an extension with no known format.
	CodeInvalidFileExtension Code = "INVALID_FILE_EXTENSION"
)

// Error is a categorized failure with an optional underlying cause
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidListType      = &Error{Code: CodeInvalidListType, Message: "invalid list type"}
	ErrInvalidListPage      = &Error{Code: CodeInvalidListPage, Message: "invalid list page"}
	ErrInvalidFileExtension = &Error{Code: CodeInvalidFileExtension, Message: "invalid file extension"}
)

// InvalidListType creates an error for a URL whose site is not supported
func InvalidListType(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidListType, Message: fmt.Sprintf(format, args...)}
}

// InvalidListPage creates an error for an unusable URL or page, wrapping cause
func InvalidListPage(cause error, format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidListPage, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// InvalidFileExtension creates an error for an unrecognized history file extension
func InvalidFileExtension(ext string) *Error {
	return &Error{
		Code:    CodeInvalidFileExtension,
		Message: fmt.Sprintf("unsupported extension %q, the file must have .html or .json extension", ext),
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}
