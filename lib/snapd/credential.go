// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/snapclient/lib/secret"
)

// AuthFileEnvironment overrides the default auth file location.
const AuthFileEnvironment = "SNAPD_AUTH_FILE"

// Credential is the identity and macaroon snapd issued at login. It is
// stored in the auth file written by "snap login" (and by
// SaveCredential).
type Credential struct {
	// ID is the daemon-side user id. Zero when unknown.
	ID int `json:"id,omitempty"`

	// Username is the local user name snapd associated with the
	// account, when it created one.
	Username string `json:"username,omitempty"`

	// Email is the store account the macaroon was issued for.
	Email string `json:"email"`

	// Macaroon is the root bearer token. Required.
	Macaroon string `json:"macaroon"`

	// Discharges are third-party discharge macaroons, sent alongside
	// the root macaroon when present.
	Discharges []string `json:"discharges,omitempty"`
}

// clone returns a copy that shares no slices with credential.
func (credential *Credential) clone() *Credential {
	copied := *credential
	copied.Discharges = append([]string(nil), credential.Discharges...)
	return &copied
}

// DefaultAuthFile returns the auth file path: $SNAPD_AUTH_FILE when
// set, otherwise $HOME/.snap/auth.json.
func DefaultAuthFile() string {
	if path := os.Getenv(AuthFileEnvironment); path != "" {
		return path
	}
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/root", ".snap", "auth.json")
	}
	return filepath.Join(homeDirectory, ".snap", "auth.json")
}

// parseCredential decodes auth file contents. The macaroon is the only
// mandatory field; its absence is a load failure.
func parseCredential(path string, data []byte) (*Credential, error) {
	var credential Credential
	if err := json.Unmarshal(data, &credential); err != nil {
		return nil, fmt.Errorf("parsing auth file %s: %w", path, err)
	}
	if credential.Macaroon == "" {
		return nil, fmt.Errorf("failed to read macaroon from auth file %s", path)
	}
	return &credential, nil
}

// LoadCredential reads and parses the auth file at path. The raw file
// bytes are zeroed after parsing.
func LoadCredential(path string) (*Credential, error) {
	return loadCredential(path, os.ReadFile)
}

func loadCredential(path string, readFile func(string) ([]byte, error)) (*Credential, error) {
	data, err := readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no auth file at %s: run \"snapctl login\" first: %w", path, err)
		}
		return nil, fmt.Errorf("reading auth file %s: %w", path, err)
	}
	credential, err := parseCredential(path, data)
	secret.Zero(data)
	if err != nil {
		return nil, err
	}
	return credential, nil
}

// SaveCredential writes credential to path as JSON. The parent
// directory is created with mode 0700 and the file is written with mode
// 0600 since it holds a bearer token.
func SaveCredential(path string, credential *Credential) error {
	if credential == nil || credential.Macaroon == "" {
		return validationError("credential has no macaroon")
	}

	data, err := json.MarshalIndent(credential, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credential: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		secret.Zero(data)
		return fmt.Errorf("creating auth directory %s: %w", directory, err)
	}

	writeError := os.WriteFile(path, data, 0600)
	secret.Zero(data)
	if writeError != nil {
		return fmt.Errorf("writing auth file %s: %w", path, writeError)
	}
	return nil
}

// ReadAuth returns the client's credential, reading the configured auth
// file on first use. The result is cached for the lifetime of the
// Client: later calls return the cached credential without touching the
// filesystem. A failed load is not cached.
//
// Concurrent first calls are serialized, so the file is read at most
// once per successful load.
func (client *Client) ReadAuth() (*Credential, error) {
	return client.ReadAuthFrom("")
}

// ReadAuthFrom is ReadAuth with an explicit auth file path for the
// first load. An empty path uses the client's configured file. Once a
// credential is cached, path is ignored.
func (client *Client) ReadAuthFrom(path string) (*Credential, error) {
	client.authMutex.Lock()
	defer client.authMutex.Unlock()

	if client.auth != nil {
		return client.auth.clone(), nil
	}

	if path == "" {
		path = client.authFile
	}
	credential, err := loadCredential(path, client.readFile)
	if err != nil {
		return nil, err
	}
	client.auth = credential
	client.logger.Debug("loaded snapd credential", "auth_file", path, "email", credential.Email)
	return credential.clone(), nil
}

// resolveCredential returns explicit when non-nil, otherwise the cached
// or freshly loaded credential.
func (client *Client) resolveCredential(explicit *Credential) (*Credential, error) {
	if explicit != nil {
		return explicit, nil
	}
	return client.ReadAuth()
}
