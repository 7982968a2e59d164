// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for snapctl and
// other programs built on lib/snapd.
//
// Configuration is optional. When the SNAPCTL_CONFIG environment
// variable (via [Load]) or a --config flag (via [LoadFile]) names a
// file, that single file is read over [Default]; there is no search
// path and no ~/.config discovery. Unknown keys are rejected so that
// typos fail loudly instead of silently falling back to defaults.
//
// ${HOME} and ${VAR:-default} patterns are expanded in path fields
// after loading.
//
// Key exports:
//
//   - [Config] -- daemon socket, auth file, and logging settings
//   - [Default] -- the daemon's canonical paths
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
