// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds passwords and tokens outside the Go heap.
//
// [Buffer] is backed by an anonymous mmap region that is locked into
// RAM (mlock) and excluded from core dumps (MADV_DONTDUMP). Close zeros
// and unmaps it; any access after Close panics.
//
// [ReadPassword] reads a login password from a file or stdin into a
// Buffer. [Zero] scrubs heap byte slices that briefly held secret
// material, such as the raw contents of the auth file.
//
// Depends on golang.org/x/sys/unix.
package secret
