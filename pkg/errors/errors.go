// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// trackLocation controls whether errors record the call site that created
// them. Enabled by EnableLocationTracking, typically from TestMain.
var trackLocation = false

// EnableLocationTracking enables recording the call site of new errors.
func EnableLocationTracking() { trackLocation = true }

// Error is a status-coded error.
type Error struct {
	Code     Status
	Message  string
	Cause    error
	CallSite string
}

var _ error = (*Error)(nil)

// Error implements error.
func (s Status) Error() string { return s.String() }

// With constructs an error with the given message parts.
func (s Status) With(v ...interface{}) *Error {
	e := s.new(1)
	e.Message = fmt.Sprint(v...)
	return e
}

// WithFormat constructs an error with a formatted message. If the format
// wraps an error with %w, the wrapped error becomes the cause.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	e := s.new(1)
	e.Message = err.Error()
	if u, ok := err.(interface{ Unwrap() error }); ok {
		e.Cause = u.Unwrap()
	}
	return e
}

// WithCauseAndFormat constructs an error with a formatted message and an
// explicit cause.
func (s Status) WithCauseAndFormat(cause error, format string, args ...interface{}) *Error {
	e := s.new(1)
	e.Message = fmt.Sprintf(format, args...)
	e.Cause = cause
	return e
}

// Wrap wraps the error with the status. Wrapping nil returns nil. Wrapping
// an *Error with UnknownError returns the error unchanged, preserving the
// original code.
func (s Status) Wrap(err error) error {
	if err == nil {
		// The return type must be `error` or this confuses the caller's nil
		// checks
		return nil
	}
	if !s.IsKnownError() {
		if _, ok := err.(*Error); ok {
			return err
		}
	}
	e := s.new(1)
	e.Message = err.Error()
	e.Cause = err
	return e
}

func (s Status) new(skip int) *Error {
	e := &Error{Code: s}
	if trackLocation {
		if _, file, line, ok := runtime.Caller(skip + 1); ok {
			e.CallSite = fmt.Sprintf("%s:%d", file, line)
		}
	}
	return e
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is returns true if the target is the error's status, or an *Error with the
// same status.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Status:
		return e.Code == t
	case *Error:
		return e.Code == t.Code
	}
	return false
}

// Format implements fmt.Formatter. %+v includes the call site and cause
// chain.
func (e *Error) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "%v (%v)", e.Error(), e.Code)
		if e.CallSite != "" {
			fmt.Fprintf(f, "\n  at %s", e.CallSite)
		}
		if e.Cause != nil {
			fmt.Fprintf(f, "\n  caused by %+v", e.Cause)
		}
		return
	}
	fmt.Fprint(f, e.Error())
}

// Code returns the error's status code, or UnknownError if the error is not
// status-coded. Code returns OK for nil.
func Code(err error) Status {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return UnknownError
}

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }
