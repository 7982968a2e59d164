// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	originalCommit, originalDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = originalCommit, originalDirty })

	GitCommit = "abc1234"
	GitDirty = "false"
	if got := Info(); got != Version+" (abc1234)" {
		t.Errorf("Info() = %q", got)
	}

	GitDirty = "true"
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info() = %q, want dirty marker", got)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) || !strings.Contains(full, "Go: go") {
		t.Errorf("Full() = %q", full)
	}
}

func TestUserAgent(t *testing.T) {
	if agent := UserAgent(); !strings.HasPrefix(agent, "snapclient/"+Version+" (") {
		t.Errorf("UserAgent() = %q", agent)
	}
}
