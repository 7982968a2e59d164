// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"fmt"
	"net/http"
)

// Action names accepted by POST /v2/snaps/{name}.
const (
	ActionInstall = "install"
	ActionRemove  = "remove"
	ActionSwitch  = "switch"
	ActionRefresh = "refresh"
	ActionRevert  = "revert"
	ActionEnable  = "enable"
	ActionDisable = "disable"
)

// ModifyOptions is the complete set of options forwarded with a snap
// action. Boolean flags are sent only when true; Channel and Version
// are sent only when set. Nothing else is ever sent.
type ModifyOptions struct {
	Classic          bool
	DevMode          bool
	IgnoreValidation bool
	JailMode         bool

	Channel *string
	Version *string
}

// String returns a pointer to s, for ModifyOptions.Channel and
// ModifyOptions.Version.
func String(s string) *string {
	return &s
}

// modifyBody is the wire form of a snap action.
type modifyBody struct {
	Action           string  `json:"action"`
	Classic          bool    `json:"classic,omitempty"`
	DevMode          bool    `json:"devmode,omitempty"`
	IgnoreValidation bool    `json:"ignore-validation,omitempty"`
	JailMode         bool    `json:"jailmode,omitempty"`
	Channel          *string `json:"channel,omitempty"`
	Version          *string `json:"version,omitempty"`
}

// body builds the wire payload for action.
func (options ModifyOptions) body(action string) modifyBody {
	return modifyBody{
		Action:           action,
		Classic:          options.Classic,
		DevMode:          options.DevMode,
		IgnoreValidation: options.IgnoreValidation,
		JailMode:         options.JailMode,
		Channel:          options.Channel,
		Version:          options.Version,
	}
}

// Modify posts action for the named snap and returns the id of the
// change the daemon started. credential may be nil, in which case the
// client's stored credential is used. The name is validated before any
// credential is loaded or request sent.
func (client *Client) Modify(ctx context.Context, action, name string, credential *Credential, options ModifyOptions) (string, error) {
	if err := validateIdentifier("name", name); err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}
	if action == "" {
		return "", fmt.Errorf("modify %s: %w", name, validationError("malformed action argument"))
	}

	credential, err := client.resolveCredential(credential)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", action, name, err)
	}

	body, err := encodeBody(options.body(action))
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", action, name, err)
	}

	envelope, err := client.call(ctx, Request{
		Method:     http.MethodPost,
		Path:       "/v2/snaps/" + name,
		Body:       body,
		Credential: credential,
	}, http.StatusAccepted)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", action, name, err)
	}

	change, err := changeID(envelope)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", action, name, err)
	}
	client.logger.Info("snap change started", "action", action, "snap", name, "change", change)
	return change, nil
}

// Install installs the named snap.
func (client *Client) Install(ctx context.Context, name string, credential *Credential, options ModifyOptions) (string, error) {
	return client.Modify(ctx, ActionInstall, name, credential, options)
}

// Remove removes the named snap.
func (client *Client) Remove(ctx context.Context, name string, credential *Credential, options ModifyOptions) (string, error) {
	return client.Modify(ctx, ActionRemove, name, credential, options)
}

// Switch changes the tracking channel of the named snap without
// refreshing it.
func (client *Client) Switch(ctx context.Context, name string, credential *Credential, options ModifyOptions) (string, error) {
	return client.Modify(ctx, ActionSwitch, name, credential, options)
}

// Refresh refreshes the named snap.
func (client *Client) Refresh(ctx context.Context, name string, credential *Credential, options ModifyOptions) (string, error) {
	return client.Modify(ctx, ActionRefresh, name, credential, options)
}

// Revert reverts the named snap to its previous revision.
func (client *Client) Revert(ctx context.Context, name string, credential *Credential, options ModifyOptions) (string, error) {
	return client.Modify(ctx, ActionRevert, name, credential, options)
}

// Enable enables the named snap.
func (client *Client) Enable(ctx context.Context, name string, credential *Credential, options ModifyOptions) (string, error) {
	return client.Modify(ctx, ActionEnable, name, credential, options)
}

// Disable disables the named snap.
func (client *Client) Disable(ctx context.Context, name string, credential *Credential, options ModifyOptions) (string, error) {
	return client.Modify(ctx, ActionDisable, name, credential, options)
}
