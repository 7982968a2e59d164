// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now() when
// tests need unique identifiers for change IDs, snap names, or
// response payloads that must be distinguishable across requests.
//
//	changeID := testutil.UniqueID("change")   // "change-1", "change-2", ...
//	snap := testutil.UniqueID("test-snap")    // "test-snap-3", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
