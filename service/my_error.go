package service

import (
	"errors"
	"fmt"
)

// Error codes carried by MyError.
const (
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound is returned by stores that hold nothing for a query.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter marks a request that is missing or has a malformed field.
	ErrBadParameter = "bad_parameter"
	// ErrConnectivity marks a device that adb could not connect.
	ErrConnectivity = "connectivity_error"
	// ErrResourceExhausted marks a port range with no free pair left.
	ErrResourceExhausted = "resource_exhausted"
	// ErrLaunch marks a background process that failed to start or died at once.
	ErrLaunch = "launch_error"
	// ErrTimeout marks a foreground command that outlived its deadline; it is left running.
	ErrTimeout = "timeout"
)

// MyError is the error type shared by the appiumhub layers. Message is safe to show to API
// clients; Inner is only logged.
type MyError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Inner   error  `json:"-"`
}

// NewMyError creates a MyError with the given code.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{Code: code, Message: message, Inner: inner}
}

// newTypedError classifies inner as code unless inner already carries a MyError, which is then
// returned as is so the first classification wins.
func newTypedError(code string, message string, inner error) *MyError {
	if known := ToMyError(inner); known != nil {
		return known
	}
	return NewMyError(code, message, inner)
}

func NewInternalServerError(message string, inner error) *MyError {
	return newTypedError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	return newTypedError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	return newTypedError(ErrBadParameter, message, inner)
}

func NewConnectivityError(message string, inner error) *MyError {
	return newTypedError(ErrConnectivity, message, inner)
}

func NewResourceExhaustedError(message string, inner error) *MyError {
	return newTypedError(ErrResourceExhausted, message, inner)
}

func NewLaunchError(message string, inner error) *MyError {
	return newTypedError(ErrLaunch, message, inner)
}

func NewTimeoutError(message string, inner error) *MyError {
	return newTypedError(ErrTimeout, message, inner)
}

func (e MyError) Error() string {
	msg := e.Code + " " + e.Message
	if e.Inner == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Inner)
}

func (e MyError) Unwrap() error { return e.Inner }

// ToMyError finds the first MyError in the chain of err.
func ToMyError(err error) *MyError {
	var myErr *MyError
	if !errors.As(err, &myErr) {
		return nil
	}
	return myErr
}

// ToMyErrorCode is the code of the first MyError in the chain of err, or "".
func ToMyErrorCode(err error) string {
	if myErr := ToMyError(err); myErr != nil {
		return myErr.Code
	}
	return ""
}

// IsMyError reports whether the chain of err holds a MyError with code.
func IsMyError(err error, code string) bool {
	return code != "" && ToMyErrorCode(err) == code
}

func IsInternalServerError(err error) bool { return IsMyError(err, ErrInternalServerError) }
func IsEntityNotFoundError(err error) bool { return IsMyError(err, ErrEntityNotFound) }
func IsBadParameterError(err error) bool { return IsMyError(err, ErrBadParameter) }
func IsConnectivityError(err error) bool { return IsMyError(err, ErrConnectivity) }
func IsResourceExhaustedError(err error) bool { return IsMyError(err, ErrResourceExhausted) }
func IsLaunchError(err error) bool { return IsMyError(err, ErrLaunch) }
func IsTimeoutError(err error) bool { return IsMyError(err, ErrTimeout) }
