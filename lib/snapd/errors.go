// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"errors"
	"fmt"
)

// Kind discriminates the three failure shapes a call can produce.
type Kind string

const (
	// KindTransport is a failure of the socket exchange itself:
	// connection refused, missing socket, write or read errors, a
	// response body that is not JSON, or an empty body on a 200/202.
	KindTransport Kind = "transport"

	// KindDaemon is a failure reported by snapd through a non-success
	// HTTP status. Message and DaemonKind come from the envelope's
	// result object.
	KindDaemon Kind = "daemon"

	// KindValidation is a client-side failure: a malformed argument
	// rejected before any request was sent, or an envelope whose
	// status-code or result does not match what the operation expects.
	KindValidation Kind = "validation"
)

// fallbackDaemonMessage is used when an error envelope has no
// result.message.
const fallbackDaemonMessage = "something went wrong"

// Error is the error type returned by every operation in this package.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Message is the human-readable description. For daemon errors
	// this is result.message from the envelope.
	Message string

	// DaemonKind is result.kind from a daemon error envelope (for
	// example "login-required" or "snap-not-found"). Empty for other
	// kinds and when the daemon did not supply one.
	DaemonKind string

	// StatusCode is the HTTP status of a daemon error. Zero otherwise.
	StatusCode int

	// Value is result.value from a daemon error envelope, when present.
	Value any

	// Err is the underlying cause, if any. Transport errors keep the
	// original network or decoding error here so that errors.Is and
	// errors.As continue to match it.
	Err error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// The sentinels are matched with errors.Is. Operations never return them
// bare: each failure is a fresh *Error of the documented kind whose Err
// is the sentinel.
var (
	// ErrEmptyResponse marks a 200 or 202 answer with no body at all.
	// The *Error carrying it has KindTransport.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedResponse marks an envelope that does not carry the
	// status-code or result shape the operation expects. The *Error
	// carrying it has KindValidation.
	ErrMalformedResponse = errors.New("malformed response")
)

func emptyResponse() *Error {
	return &Error{Kind: KindTransport, Message: ErrEmptyResponse.Error(), Err: ErrEmptyResponse}
}

// malformedResponse builds a malformed-response error. A non-nil detail
// is appended to the message and kept in the chain.
func malformedResponse(detail error) *Error {
	if detail == nil {
		return &Error{Kind: KindValidation, Message: ErrMalformedResponse.Error(), Err: ErrMalformedResponse}
	}
	return &Error{
		Kind:    KindValidation,
		Message: ErrMalformedResponse.Error() + ": " + detail.Error(),
		Err:     errors.Join(ErrMalformedResponse, detail),
	}
}

// transportError wraps a network or decoding failure.
func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

// validationError builds a client-side argument error.
func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// daemonErrorResult is the result object of an error envelope.
type daemonErrorResult struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Value   any    `json:"value"`
}

// newDaemonError converts a decoded error envelope into an *Error. A
// result that is not an object, or an object without a message, falls
// back to a generic message.
func newDaemonError(statusCode int, envelope *Envelope) *Error {
	daemonError := &Error{
		Kind:       KindDaemon,
		Message:    fallbackDaemonMessage,
		StatusCode: statusCode,
	}

	var result daemonErrorResult
	if envelope.decodeResultInto(&result) == nil {
		if result.Message != "" {
			daemonError.Message = result.Message
		}
		daemonError.DaemonKind = result.Kind
		daemonError.Value = result.Value
	}
	return daemonError
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsKind reports whether err's chain contains an *Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	target, ok := AsError(err)
	return ok && target.Kind == kind
}

// IsDaemonKind reports whether err is a daemon error whose result.kind
// equals daemonKind.
func IsDaemonKind(err error, daemonKind string) bool {
	target, ok := AsError(err)
	return ok && target.Kind == KindDaemon && target.DaemonKind == daemonKind
}
