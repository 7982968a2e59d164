// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// ResponseType is the envelope's "type" field.
type ResponseType string

const (
	ResponseTypeSync  ResponseType = "sync"
	ResponseTypeAsync ResponseType = "async"
	ResponseTypeError ResponseType = "error"
)

// Envelope is the JSON object snapd wraps around every response.
// StatusCode is the daemon's own status marker and is checked by each
// operation independently of the HTTP status.
type Envelope struct {
	Type       ResponseType    `json:"type"`
	StatusCode int             `json:"status-code"`
	Status     string          `json:"status"`
	Result     json.RawMessage `json:"result"`
	Change     string          `json:"change,omitempty"`
}

// accepts reports whether the envelope's status-code is one of codes.
func (envelope *Envelope) accepts(codes ...int) bool {
	return envelope != nil && slices.Contains(codes, envelope.StatusCode)
}

// hasResult reports whether the envelope carries a non-null result.
func (envelope *Envelope) hasResult() bool {
	trimmed := bytes.TrimSpace(envelope.Result)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// decodeResultInto unmarshals the result payload into v without
// mapping the failure to ErrMalformedResponse.
func (envelope *Envelope) decodeResultInto(v any) error {
	if !envelope.hasResult() {
		return fmt.Errorf("envelope has no result")
	}
	return json.Unmarshal(envelope.Result, v)
}

// DecodeResult unmarshals the result payload into v. A missing, null,
// or mistyped result is reported as ErrMalformedResponse with the JSON
// error attached for diagnostics.
func (envelope *Envelope) DecodeResult(v any) error {
	if !envelope.hasResult() {
		return malformedResponse(nil)
	}
	if err := json.Unmarshal(envelope.Result, v); err != nil {
		return malformedResponse(err)
	}
	return nil
}
