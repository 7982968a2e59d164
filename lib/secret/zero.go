// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

// Zero overwrites data with zeros.
func Zero(data []byte) {
	clear(data)
}
