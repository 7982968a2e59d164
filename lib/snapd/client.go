// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Client is a typed client for the snapd control API. A Client is safe
// for concurrent use; each call opens its own connection.
type Client struct {
	transport *Transport
	authFile  string
	logger    *slog.Logger
	readFile  func(string) ([]byte, error)

	authMutex sync.Mutex
	auth      *Credential
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	socketPath   string
	authFile     string
	logger       *slog.Logger
	roundTripper http.RoundTripper
}

// WithSocketPath sets the daemon socket. Default: DefaultSocketPath.
func WithSocketPath(path string) Option {
	return func(options *clientOptions) {
		options.socketPath = path
	}
}

// WithAuthFile sets the auth file read by ReadAuth. Default:
// DefaultAuthFile().
func WithAuthFile(path string) Option {
	return func(options *clientOptions) {
		options.authFile = path
	}
}

// WithLogger sets the logger used for per-request debug records.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(options *clientOptions) {
		options.logger = logger
	}
}

// WithHTTPTransport replaces the Unix socket round tripper. Tests use
// this to point the client at an httptest.Server.
func WithHTTPTransport(roundTripper http.RoundTripper) Option {
	return func(options *clientOptions) {
		options.roundTripper = roundTripper
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.socketPath == "" {
		options.socketPath = DefaultSocketPath
	}
	if options.authFile == "" {
		options.authFile = DefaultAuthFile()
	}
	if options.logger == nil {
		options.logger = slog.New(slog.DiscardHandler)
	}

	var transport *Transport
	if options.roundTripper != nil {
		transport = newTransport(options.socketPath, options.roundTripper, options.logger)
	} else {
		transport = NewTransport(options.socketPath, options.logger)
	}

	return &Client{
		transport: transport,
		authFile:  options.authFile,
		logger:    options.logger,
		readFile:  os.ReadFile,
	}
}

// Transport returns the underlying transport for callers that need to
// reach endpoints this package does not wrap.
func (client *Client) Transport() *Transport {
	return client.transport
}

// AuthFile returns the auth file path the client loads credentials from.
func (client *Client) AuthFile() string {
	return client.authFile
}

// call executes request and checks the envelope status-code against
// accept. Any other status-code is ErrMalformedResponse.
func (client *Client) call(ctx context.Context, request Request, accept ...int) (*Envelope, error) {
	envelope, err := client.transport.Execute(ctx, request)
	if err != nil {
		return nil, err
	}
	if !envelope.accepts(accept...) {
		client.logger.Debug("unexpected envelope status",
			"path", request.Path,
			"status_code", envelope.StatusCode,
			"accept", accept,
		)
		return nil, malformedResponse(nil)
	}
	return envelope, nil
}

// changeID returns the envelope's change id, which an async response
// must carry.
func changeID(envelope *Envelope) (string, error) {
	if envelope.Change == "" {
		return "", malformedResponse(nil)
	}
	return envelope.Change, nil
}

// encodeBody marshals a request payload.
func encodeBody(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return data, nil
}

// validateIdentifier checks a snap name or change id that will be
// interpolated into a request path.
func validateIdentifier(field, value string) error {
	if value == "" {
		return validationError("malformed %s argument", field)
	}
	if strings.ContainsAny(value, "/?#") {
		return validationError("malformed %s argument: %q contains a path separator", field, value)
	}
	return nil
}
