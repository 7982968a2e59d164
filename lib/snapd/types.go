// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"encoding/json"
	"time"
)

// Snap is an entry from /v2/snaps or the result of /v2/snaps/{name}.
// Only commonly used fields are decoded; the full payload is available
// through InfoRaw.
type Snap struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Title            string     `json:"title,omitempty"`
	Summary          string     `json:"summary"`
	Description      string     `json:"description"`
	Type             string     `json:"type"`
	Base             string     `json:"base,omitempty"`
	Version          string     `json:"version"`
	Revision         string     `json:"revision"`
	Channel          string     `json:"channel"`
	TrackingChannel  string     `json:"tracking-channel,omitempty"`
	Confinement      string     `json:"confinement"`
	Status           string     `json:"status"`
	Developer        string     `json:"developer"`
	Publisher        *Publisher `json:"publisher,omitempty"`
	InstalledSize    int64      `json:"installed-size,omitempty"`
	InstallDate      *time.Time `json:"install-date,omitempty"`
	DevMode          bool       `json:"devmode"`
	JailMode         bool       `json:"jailmode"`
	Private          bool       `json:"private"`
	TryMode          bool       `json:"trymode,omitempty"`
	IgnoreValidation bool       `json:"ignore-validation,omitempty"`
	MountedFrom      string     `json:"mounted-from,omitempty"`
	Contact          string     `json:"contact,omitempty"`
	Apps             []App      `json:"apps,omitempty"`
}

// Publisher identifies the store account that published a snap.
type Publisher struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display-name"`
	Validation  string `json:"validation,omitempty"`
}

// App is an application or service shipped by a snap.
type App struct {
	Snap    string `json:"snap,omitempty"`
	Name    string `json:"name"`
	Daemon  string `json:"daemon,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
	Active  bool   `json:"active,omitempty"`
}

// Change is a daemon-side asynchronous operation.
type Change struct {
	ID        string                     `json:"id"`
	Kind      string                     `json:"kind"`
	Summary   string                     `json:"summary"`
	Status    string                     `json:"status"`
	Tasks     []Task                     `json:"tasks,omitempty"`
	Ready     bool                       `json:"ready"`
	Err       string                     `json:"err,omitempty"`
	SpawnTime time.Time                  `json:"spawn-time"`
	ReadyTime *time.Time                 `json:"ready-time,omitempty"`
	Data      map[string]json.RawMessage `json:"data,omitempty"`
}

// Task is one step of a Change.
type Task struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Summary   string       `json:"summary"`
	Status    string       `json:"status"`
	Log       []string     `json:"log,omitempty"`
	Progress  TaskProgress `json:"progress"`
	SpawnTime time.Time    `json:"spawn-time"`
	ReadyTime *time.Time   `json:"ready-time,omitempty"`
}

// TaskProgress reports how far a task has advanced.
type TaskProgress struct {
	Label string `json:"label"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// Interfaces is the result of GET /v2/interfaces.
type Interfaces struct {
	Plugs []Plug `json:"plugs"`
	Slots []Slot `json:"slots"`
}

// Plug is a consumer side of an interface connection.
type Plug struct {
	Snap        string         `json:"snap"`
	Name        string         `json:"plug"`
	Interface   string         `json:"interface"`
	Attrs       map[string]any `json:"attrs,omitempty"`
	Apps        []string       `json:"apps,omitempty"`
	Label       string         `json:"label,omitempty"`
	Connections []SlotRef      `json:"connections,omitempty"`
}

// Slot is a provider side of an interface connection.
type Slot struct {
	Snap        string         `json:"snap"`
	Name        string         `json:"slot"`
	Interface   string         `json:"interface"`
	Attrs       map[string]any `json:"attrs,omitempty"`
	Apps        []string       `json:"apps,omitempty"`
	Label       string         `json:"label,omitempty"`
	Connections []PlugRef      `json:"connections,omitempty"`
}

// PlugRef names a plug by owning snap and plug name.
type PlugRef struct {
	Snap string `json:"snap"`
	Plug string `json:"plug"`
}

// SlotRef names a slot by owning snap and slot name.
type SlotRef struct {
	Snap string `json:"snap"`
	Slot string `json:"slot"`
}
