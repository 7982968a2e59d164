// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// GetConf returns configuration values of the named snap. With no keys
// the daemon returns the whole configuration document.
func (client *Client) GetConf(ctx context.Context, name string, keys []string) (map[string]any, error) {
	if err := validateIdentifier("name", name); err != nil {
		return nil, fmt.Errorf("get conf: %w", err)
	}

	credential, err := client.ReadAuth()
	if err != nil {
		return nil, fmt.Errorf("get conf %s: %w", name, err)
	}

	var query url.Values
	if len(keys) > 0 {
		query = url.Values{"keys": {strings.Join(keys, ",")}}
	}

	envelope, err := client.call(ctx, Request{
		Method:     http.MethodGet,
		Path:       "/v2/snaps/" + name + "/conf",
		Query:      query,
		Credential: credential,
	}, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("get conf %s: %w", name, err)
	}

	var values map[string]any
	if err := envelope.DecodeResult(&values); err != nil {
		return nil, fmt.Errorf("get conf %s: %w", name, err)
	}
	return values, nil
}

// PutConf sets configuration values of the named snap and returns the
// envelope's status string. The daemon answers synchronously (200) when
// nothing needs to run and asynchronously (202) when a configure hook
// was started; both are success.
func (client *Client) PutConf(ctx context.Context, name string, values map[string]any) (string, error) {
	if err := validateIdentifier("name", name); err != nil {
		return "", fmt.Errorf("put conf: %w", err)
	}

	credential, err := client.ReadAuth()
	if err != nil {
		return "", fmt.Errorf("put conf %s: %w", name, err)
	}

	if values == nil {
		values = map[string]any{}
	}
	body, err := encodeBody(values)
	if err != nil {
		return "", fmt.Errorf("put conf %s: %w", name, err)
	}

	envelope, err := client.call(ctx, Request{
		Method:     http.MethodPut,
		Path:       "/v2/snaps/" + name + "/conf",
		Body:       body,
		Credential: credential,
	}, http.StatusOK, http.StatusAccepted)
	if err != nil {
		return "", fmt.Errorf("put conf %s: %w", name, err)
	}
	return envelope.Status, nil
}
