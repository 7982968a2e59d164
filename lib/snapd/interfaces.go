// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"fmt"
	"net/http"
)

// Interface actions accepted by POST /v2/interfaces.
const (
	ActionConnect    = "connect"
	ActionDisconnect = "disconnect"
)

// Interfaces lists every plug and slot known to the daemon along with
// their connections. credential may be nil.
func (client *Client) Interfaces(ctx context.Context, credential *Credential) (*Interfaces, error) {
	credential, err := client.resolveCredential(credential)
	if err != nil {
		return nil, fmt.Errorf("interfaces: %w", err)
	}

	envelope, err := client.call(ctx, Request{
		Method:     http.MethodGet,
		Path:       "/v2/interfaces",
		Credential: credential,
	}, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("interfaces: %w", err)
	}

	var interfaces Interfaces
	if err := envelope.DecodeResult(&interfaces); err != nil {
		return nil, fmt.Errorf("interfaces: %w", err)
	}
	return &interfaces, nil
}

// interfaceBody is the wire form of a connect or disconnect. The daemon
// takes lists, but exactly one plug and one slot are always sent.
type interfaceBody struct {
	Action string    `json:"action"`
	Slots  []SlotRef `json:"slots"`
	Plugs  []PlugRef `json:"plugs"`
}

// ModifyInterface connects or disconnects one plug and one slot and
// returns the id of the change the daemon started. credential may be
// nil.
func (client *Client) ModifyInterface(ctx context.Context, action string, slot SlotRef, plug PlugRef, credential *Credential) (string, error) {
	if action == "" {
		return "", fmt.Errorf("interfaces: %w", validationError("malformed action argument"))
	}
	if plug.Snap == "" || plug.Plug == "" {
		return "", fmt.Errorf("%s: %w", action, validationError("malformed plug argument"))
	}

	credential, err := client.resolveCredential(credential)
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}

	body, err := encodeBody(interfaceBody{
		Action: action,
		Slots:  []SlotRef{slot},
		Plugs:  []PlugRef{plug},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}

	envelope, err := client.call(ctx, Request{
		Method:     http.MethodPost,
		Path:       "/v2/interfaces",
		Body:       body,
		Credential: credential,
	}, http.StatusAccepted)
	if err != nil {
		return "", fmt.Errorf("%s %s:%s %s:%s: %w", action, plug.Snap, plug.Plug, slot.Snap, slot.Slot, err)
	}

	change, err := changeID(envelope)
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}
	client.logger.Info("interface change started",
		"action", action,
		"plug", plug.Snap+":"+plug.Plug,
		"slot", slot.Snap+":"+slot.Slot,
		"change", change,
	)
	return change, nil
}

// Connect connects plug to slot.
func (client *Client) Connect(ctx context.Context, slot SlotRef, plug PlugRef, credential *Credential) (string, error) {
	return client.ModifyInterface(ctx, ActionConnect, slot, plug, credential)
}

// Disconnect disconnects plug from slot.
func (client *Client) Disconnect(ctx context.Context, slot SlotRef, plug PlugRef, credential *Credential) (string, error) {
	return client.ModifyInterface(ctx, ActionDisconnect, slot, plug, credential)
}
