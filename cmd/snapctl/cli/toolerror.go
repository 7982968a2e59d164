// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/snapclient/lib/snapd"
)

// ErrorCategory classifies command errors so that scripts can branch
// on the exit code without parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing arguments, unknown flags, unparseable values. Exit 2.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced snap, change, or
	// interface does not exist. Exit 3.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the daemon refused the operation
	// for lack of authentication or permission. Exit 4.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the operation conflicts with daemon
	// state, such as another change in progress. Exit 5.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates the daemon could not be reached or
	// the exchange failed mid-flight. Exit 6.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates anything else: malformed daemon
	// responses, I/O failures, bugs. Exit 1.
	CategoryInternal ErrorCategory = "internal"
)

// ExitCode returns the process exit status for the category.
func (c ErrorCategory) ExitCode() int {
	switch c {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryForbidden:
		return 4
	case CategoryConflict:
		return 5
	case CategoryTransient:
		return 6
	default:
		return 1
	}
}

// ToolError is a categorized error returned by CLI commands. It wraps
// an inner error, preserving the full chain for errors.Is and
// errors.As.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// daemonKindCategories maps snapd error kinds to categories where the
// HTTP status alone is ambiguous.
var daemonKindCategories = map[string]ErrorCategory{
	"login-required":           CategoryForbidden,
	"auth-cancelled":           CategoryForbidden,
	"two-factor-required":      CategoryForbidden,
	"two-factor-failed":        CategoryForbidden,
	"snap-not-found":           CategoryNotFound,
	"snap-not-installed":       CategoryNotFound,
	"app-not-found":            CategoryNotFound,
	"snap-already-installed":   CategoryConflict,
	"snap-change-conflict":     CategoryConflict,
	"snap-no-update-available": CategoryConflict,
}

// Classify returns the category of err. A *ToolError anywhere in the
// chain wins; otherwise a *snapd.Error is classified by its kind, the
// daemon's error kind, and the HTTP status.
func Classify(err error) ErrorCategory {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category
	}

	snapdError, ok := snapd.AsError(err)
	if !ok {
		return CategoryInternal
	}

	switch snapdError.Kind {
	case snapd.KindTransport:
		if errors.Is(err, snapd.ErrEmptyResponse) || isDecodeError(err) {
			return CategoryInternal
		}
		return CategoryTransient
	case snapd.KindValidation:
		if errors.Is(err, snapd.ErrMalformedResponse) {
			return CategoryInternal
		}
		return CategoryValidation
	}

	if category, ok := daemonKindCategories[snapdError.DaemonKind]; ok {
		return category
	}
	switch snapdError.StatusCode {
	case http.StatusBadRequest:
		return CategoryValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return CategoryForbidden
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusConflict:
		return CategoryConflict
	}
	return CategoryInternal
}

// isDecodeError reports whether err's chain holds a JSON decoding
// failure: the daemon answered, but not with a valid envelope.
func isDecodeError(err error) bool {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	return errors.As(err, &syntaxError) || errors.As(err, &typeError)
}
