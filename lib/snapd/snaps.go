// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Snaps returns the installed snaps.
func (client *Client) Snaps(ctx context.Context) ([]Snap, error) {
	var snaps []Snap
	if err := client.listSnaps(ctx, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// snapName is the only field ListSnaps reads from each entry.
type snapName struct {
	Name string `json:"name"`
}

// ListSnaps returns the names of the installed snaps, in the order the
// daemon reports them. Other fields of each entry are not decoded.
func (client *Client) ListSnaps(ctx context.Context) ([]string, error) {
	var entries []snapName
	if err := client.listSnaps(ctx, &entries); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names, nil
}

func (client *Client) listSnaps(ctx context.Context, result any) error {
	envelope, err := client.call(ctx, Request{
		Method: http.MethodGet,
		Path:   "/v2/snaps",
	}, http.StatusOK)
	if err != nil {
		return fmt.Errorf("list snaps: %w", err)
	}
	if err := envelope.DecodeResult(result); err != nil {
		return fmt.Errorf("list snaps: %w", err)
	}
	return nil
}

// InfoRaw returns the daemon's detail payload for one snap, undecoded.
// The name is validated before any request is sent.
func (client *Client) InfoRaw(ctx context.Context, name string) (json.RawMessage, error) {
	if err := validateIdentifier("name", name); err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}

	envelope, err := client.call(ctx, Request{
		Method: http.MethodGet,
		Path:   "/v2/snaps/" + name,
	}, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("info %s: %w", name, err)
	}
	if !envelope.hasResult() {
		return nil, fmt.Errorf("info %s: %w", name, malformedResponse(nil))
	}
	return envelope.Result, nil
}

// Info returns details about one installed snap.
func (client *Client) Info(ctx context.Context, name string) (*Snap, error) {
	raw, err := client.InfoRaw(ctx, name)
	if err != nil {
		return nil, err
	}
	envelope := Envelope{Result: raw}
	var snap Snap
	if err := envelope.DecodeResult(&snap); err != nil {
		return nil, fmt.Errorf("info %s: %w", name, err)
	}
	return &snap, nil
}
