// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"fmt"
	"net/http"
)

// Service actions accepted by POST /v2/apps.
const (
	AppActionStart   = "start"
	AppActionStop    = "stop"
	AppActionRestart = "restart"
)

// AppsRequest controls snap services. Names may be snap names (all
// services of the snap) or "snap.app" service names.
type AppsRequest struct {
	Action string   `json:"action"`
	Names  []string `json:"names"`

	// Enable makes a start persist across reboots.
	Enable bool `json:"enable,omitempty"`
	// Disable makes a stop persist across reboots.
	Disable bool `json:"disable,omitempty"`
	// Reload asks a restart to reload instead where the service
	// supports it.
	Reload bool `json:"reload,omitempty"`
}

// PostApps starts, stops, or restarts snap services and returns the id
// of the change the daemon started. It returns the change id rather
// than the envelope's status string so the result can be passed to
// Change, matching the other asynchronous operations.
func (client *Client) PostApps(ctx context.Context, request AppsRequest) (string, error) {
	switch request.Action {
	case AppActionStart, AppActionStop, AppActionRestart:
	default:
		return "", fmt.Errorf("apps: %w", validationError("malformed action argument %q", request.Action))
	}
	if len(request.Names) == 0 {
		return "", fmt.Errorf("apps %s: %w", request.Action, validationError("no service names given"))
	}

	body, err := encodeBody(request)
	if err != nil {
		return "", fmt.Errorf("apps %s: %w", request.Action, err)
	}

	envelope, err := client.call(ctx, Request{
		Method: http.MethodPost,
		Path:   "/v2/apps",
		Body:   body,
	}, http.StatusAccepted)
	if err != nil {
		return "", fmt.Errorf("apps %s: %w", request.Action, err)
	}
	return changeID(envelope)
}
