// Package apperror defines the error codes surfaced by the API and maps
// validation failures to readable messages.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeUnknownAction    = "UNKNOWN_ACTION"
	CodeMissingParam     = "MISSING_PARAM"
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is an error with an HTTP status and a stable code.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, CodeValidation, message)
}

func MethodNotAllowed(method string) *Error {
	return New(http.StatusMethodNotAllowed, CodeMethodNotAllowed, fmt.Sprintf("Method %s not allowed", method))
}

func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message, Err: err}
}

// StatusOf returns the HTTP status carried by err, 500 when it has none.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// PublicMessage is the message sent to clients. Internal errors carry their
// cause so unexpected failures stay diagnosable.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != CodeInternal {
		return appErr.Message
	}
	return err.Error()
}

func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

var tagMessages = map[string]string{
	"required": "is required",
	"datekey":  "must be YYYY-MM-DD",
	"monthkey": "must be YYYY-MM",
	"url":      "must be a valid URL",
	"max":      "is too long",
	"min":      "is too short",
	"gte":      "is too small",
	"lte":      "is too large",
}

// ValidationMessage flattens validator errors into one message such as
// "date must be YYYY-MM-DD; note is too long". Other errors pass through.
func ValidationMessage(err error) string {
	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return err.Error()
	}

	msg := ""
	for i, e := range validationErr {
		text, ok := tagMessages[e.Tag()]
		if !ok {
			text = "is invalid"
		}
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s %s", e.Field(), text)
	}
	return msg
}

// FromValidation wraps a validator failure as a 400 VALIDATION_ERROR.
func FromValidation(err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: ValidationMessage(err), Err: err}
}
