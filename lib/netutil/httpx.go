// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O helpers for the snapd client.
//
// [ReadResponse] bounds response body reads at [MaxResponseSize] to
// prevent unbounded memory allocation from a misbehaving daemon. The
// daemon's JSON responses (snap listings, change records, interface
// tables) are orders of magnitude smaller than the limit. A body that
// exceeds it is an error rather than being silently truncated into
// undecodable JSON.
package netutil

import (
	"errors"
	"fmt"
	"io"
)

// MaxResponseSize is the bound on JSON API response body reads: 64 MB.
const MaxResponseSize int64 = 64 << 20

// ErrResponseTooLarge is returned by ReadResponse when the body exceeds
// MaxResponseSize.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return readLimited(body, MaxResponseSize)
}

func readLimited(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, limit)
	}
	return data, nil
}
