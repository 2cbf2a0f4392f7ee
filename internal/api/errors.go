// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Every *Error matches ErrAPI and exactly one of the more
// specific kinds via errors.Is.
var (
	ErrAPI            = errors.New("toggl api error")
	ErrPremium        = errors.New("premium functionality required")
	ErrAuthentication = errors.New("authentication failed")
	ErrThrottled      = errors.New("request throttled")
	ErrNotFound       = errors.New("resource not found")
	ErrServer         = errors.New("server error")

	ErrMethodNotImplemented = errors.New("HTTP method not implemented")
	ErrInvalidResponse      = errors.New("response is not valid JSON")
)

// Error is returned for every response with a status code of 300 or above.
type Error struct {
	StatusCode int
	Body       string
	Message    string

	kind error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.kind
}

func (e *Error) Is(target error) bool {
	return target == ErrAPI
}

// newError maps a status code and body onto the error taxonomy.
func newError(status int, body string) *Error {
	e := &Error{StatusCode: status, Body: body}

	switch {
	case status == http.StatusPaymentRequired:
		e.kind = ErrPremium
		e.Message = "Request tried to utilize Premium functionality on a workspace which is not Premium!"
	case status == http.StatusForbidden:
		e.kind = ErrAuthentication
		e.Message = "Authentication credentials are not correct."
	case status == http.StatusTooManyRequests:
		e.kind = ErrThrottled
		e.Message = "Toggl's API refused your request for throttling reasons."
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
		e.Message = "Requested resource not found."
	case status >= 500 && status < 600:
		e.kind = ErrServer
		e.Message = "Toggl's API server is having problems."
	default:
		e.kind = ErrAPI
		e.Message = fmt.Sprintf("Toggl's API server returned %d code with message: %s", status, body)
	}

	return e
}
