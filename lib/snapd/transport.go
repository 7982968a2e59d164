// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bureau-foundation/snapclient/lib/netutil"
	"github.com/bureau-foundation/snapclient/lib/version"
)

// DefaultSocketPath is where snapd listens for its control API.
const DefaultSocketPath = "/run/snapd.socket"

// APIPrefix is the path prefix every request must carry.
const APIPrefix = "/v2/"

// requestHost is the placeholder authority used in request URLs. The
// dialer ignores it and always connects to the socket path.
const requestHost = "localhost"

// Request describes one call to the daemon. It is built fresh for every
// operation and never reused.
type Request struct {
	// Method is GET, POST, or PUT.
	Method string

	// Path is the absolute API path, for example "/v2/snaps/core".
	Path string

	// Query is appended to Path when non-empty.
	Query url.Values

	// Body is the serialized JSON payload. Only sent with POST and PUT.
	Body []byte

	// Credential, when non-nil with a non-empty macaroon, is attached
	// as the Authorization header.
	Credential *Credential
}

// validate rejects requests that could never be valid before a
// connection is opened.
func (request *Request) validate() error {
	switch request.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut:
	default:
		return validationError("unsupported method %q", request.Method)
	}
	if !strings.HasPrefix(request.Path, APIPrefix) {
		return validationError("path %q is not under %s", request.Path, APIPrefix)
	}
	return nil
}

// sendsBody reports whether the request carries a payload on the wire.
func (request *Request) sendsBody() bool {
	return (request.Method == http.MethodPost || request.Method == http.MethodPut) && len(request.Body) > 0
}

// target returns the request URI sent to the daemon.
func (request *Request) target() string {
	target := "http://" + requestHost + request.Path
	if len(request.Query) > 0 {
		target += "?" + request.Query.Encode()
	}
	return target
}

// AuthorizationHeader formats a credential in the scheme snapd expects:
//
//	Macaroon root="<macaroon>"
//
// followed by one discharge="<discharge>" parameter per discharge
// macaroon. Returns "" when the credential carries no macaroon.
func AuthorizationHeader(credential *Credential) string {
	if credential == nil || credential.Macaroon == "" {
		return ""
	}
	var header strings.Builder
	header.WriteString(`Macaroon root="`)
	header.WriteString(credential.Macaroon)
	header.WriteString(`"`)
	for _, discharge := range credential.Discharges {
		header.WriteString(`, discharge="`)
		header.WriteString(discharge)
		header.WriteString(`"`)
	}
	return header.String()
}

// Transport executes single request/response exchanges against the
// daemon socket. It holds no state between calls beyond its
// configuration and is safe for concurrent use.
type Transport struct {
	socketPath string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTransport creates a Transport that dials socketPath for every
// request. Keep-alives are disabled so each exchange owns exactly one
// connection, which is closed when the exchange returns.
func NewTransport(socketPath string, logger *slog.Logger) *Transport {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return newTransport(socketPath, &http.Transport{
		DialContext: func(ctx context.Context, network, address string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "unix", socketPath)
		},
		DisableKeepAlives: true,
	}, logger)
}

func newTransport(socketPath string, roundTripper http.RoundTripper, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transport{
		socketPath: socketPath,
		httpClient: &http.Client{Transport: roundTripper},
		logger:     logger,
	}
}

// SocketPath returns the socket this transport dials.
func (transport *Transport) SocketPath() string {
	return transport.socketPath
}

// Execute performs one exchange. On HTTP 200 or 202 it returns the
// decoded envelope; the caller checks the envelope's status-code. Any
// other HTTP status yields an *Error of kind KindDaemon.
func (transport *Transport) Execute(ctx context.Context, request Request) (*Envelope, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	var body io.Reader = http.NoBody
	if request.sendsBody() {
		body = bytes.NewReader(request.Body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, request.target(), body)
	if err != nil {
		return nil, transportError(err)
	}

	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("User-Agent", version.UserAgent())
	if request.sendsBody() {
		httpRequest.ContentLength = int64(len(request.Body))
		httpRequest.Header.Set("Content-Length", strconv.Itoa(len(request.Body)))
	}
	if authorization := AuthorizationHeader(request.Credential); authorization != "" {
		httpRequest.Header.Set("Authorization", authorization)
	}

	response, err := transport.httpClient.Do(httpRequest)
	if err != nil {
		transport.logger.Debug("snapd request failed",
			"method", request.Method,
			"path", request.Path,
			"error", err,
		)
		return nil, transportError(err)
	}
	defer response.Body.Close()

	data, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, transportError(err)
	}

	envelope, err := decodeResponse(response.StatusCode, data)
	if err != nil {
		transport.logger.Debug("snapd request rejected",
			"method", request.Method,
			"path", request.Path,
			"http_status", response.StatusCode,
			"error", err,
		)
		return nil, err
	}

	transport.logger.Debug("snapd request complete",
		"method", request.Method,
		"path", request.Path,
		"http_status", response.StatusCode,
		"status_code", envelope.StatusCode,
		"change", envelope.Change,
	)
	return envelope, nil
}

// decodeResponse applies the envelope decoding rules to a fully read
// response body.
func decodeResponse(httpStatus int, data []byte) (*Envelope, error) {
	if httpStatus == http.StatusOK || httpStatus == http.StatusAccepted {
		if len(data) == 0 {
			return nil, emptyResponse()
		}
		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, transportError(err)
		}
		return &envelope, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, transportError(err)
	}
	return nil, newDaemonError(httpStatus, &envelope)
}
