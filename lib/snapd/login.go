// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"fmt"
	"net/http"
)

// LoginRequest is the body of POST /v2/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// OTP is the one-time passkey for accounts with two-factor
	// authentication. Empty when not required.
	OTP string `json:"otp,omitempty"`
}

// Login authenticates against the store through the daemon and returns
// the issued credential. It does not persist the credential; see
// SaveCredential. The daemon may require root for this call.
func (client *Client) Login(ctx context.Context, request LoginRequest) (*Credential, error) {
	if request.Email == "" {
		return nil, fmt.Errorf("login: %w", validationError("malformed email argument"))
	}

	body, err := encodeBody(request)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	envelope, err := client.call(ctx, Request{
		Method: http.MethodPost,
		Path:   "/v2/login",
		Body:   body,
	}, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var credential Credential
	if err := envelope.DecodeResult(&credential); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if credential.Macaroon == "" {
		return nil, fmt.Errorf("login: %w", malformedResponse(nil))
	}
	if credential.Email == "" {
		credential.Email = request.Email
	}
	return &credential, nil
}

// Logout invalidates the credential's session with the daemon.
// credential may be nil, in which case the stored credential is used.
// A nil error means the daemon confirmed the logout.
func (client *Client) Logout(ctx context.Context, credential *Credential) error {
	credential, err := client.resolveCredential(credential)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if _, err := client.call(ctx, Request{
		Method:     http.MethodPost,
		Path:       "/v2/logout",
		Credential: credential,
	}, http.StatusOK); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
