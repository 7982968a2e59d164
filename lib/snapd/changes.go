// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"fmt"
	"net/http"
)

// ChangeStatus is the result of Status: exactly one of Change or
// Changes is set, depending on whether an id was given.
type ChangeStatus struct {
	Change  *Change
	Changes []Change
}

// Status reports on one change when id is non-nil, or on every change
// the daemon tracks when id is nil.
func (client *Client) Status(ctx context.Context, id *string) (*ChangeStatus, error) {
	if id == nil {
		changes, err := client.Changes(ctx)
		if err != nil {
			return nil, err
		}
		return &ChangeStatus{Changes: changes}, nil
	}

	change, err := client.Change(ctx, *id)
	if err != nil {
		return nil, err
	}
	return &ChangeStatus{Change: change}, nil
}

// Change returns the change with the given id.
func (client *Client) Change(ctx context.Context, id string) (*Change, error) {
	if err := validateIdentifier("id", id); err != nil {
		return nil, fmt.Errorf("change: %w", err)
	}

	envelope, err := client.call(ctx, Request{
		Method: http.MethodGet,
		Path:   "/v2/changes/" + id,
	}, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("change %s: %w", id, err)
	}

	var change Change
	if err := envelope.DecodeResult(&change); err != nil {
		return nil, fmt.Errorf("change %s: %w", id, err)
	}
	return &change, nil
}

// Changes returns the changes the daemon currently tracks.
func (client *Client) Changes(ctx context.Context) ([]Change, error) {
	envelope, err := client.call(ctx, Request{
		Method: http.MethodGet,
		Path:   "/v2/changes",
	}, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("changes: %w", err)
	}

	var changes []Change
	if err := envelope.DecodeResult(&changes); err != nil {
		return nil, fmt.Errorf("changes: %w", err)
	}
	return changes, nil
}

// Abort asks the daemon to abort the change with the given id and
// returns its updated state. credential may be nil.
func (client *Client) Abort(ctx context.Context, id string, credential *Credential) (*Change, error) {
	if err := validateIdentifier("id", id); err != nil {
		return nil, fmt.Errorf("abort: %w", err)
	}

	credential, err := client.resolveCredential(credential)
	if err != nil {
		return nil, fmt.Errorf("abort %s: %w", id, err)
	}

	body, err := encodeBody(map[string]string{"action": "abort"})
	if err != nil {
		return nil, fmt.Errorf("abort %s: %w", id, err)
	}

	envelope, err := client.call(ctx, Request{
		Method:     http.MethodPost,
		Path:       "/v2/changes/" + id,
		Body:       body,
		Credential: credential,
	}, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("abort %s: %w", id, err)
	}

	var change Change
	if err := envelope.DecodeResult(&change); err != nil {
		return nil, fmt.Errorf("abort %s: %w", id, err)
	}
	return &change, nil
}
