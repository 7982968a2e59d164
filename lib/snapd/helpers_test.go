// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bureau-foundation/snapclient/lib/testutil"
)

const testMacaroon = "MDAxY2xvY2F0aW9uIHNuYXBkCg"

// recordedRequest is what the fake daemon saw for one request.
type recordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	UserAgent     string
	ContentLength int64
	Body          []byte
}

// fakeDaemon is an HTTP handler standing in for snapd. Each test
// registers the responses it needs on mux and inspects requests
// afterwards.
type fakeDaemon struct {
	mux *http.ServeMux

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{mux: http.NewServeMux()}
}

func (daemon *fakeDaemon) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	daemon.mu.Lock()
	daemon.requests = append(daemon.requests, recordedRequest{
		Method:        request.Method,
		Path:          request.URL.Path,
		RawQuery:      request.URL.RawQuery,
		Authorization: request.Header.Get("Authorization"),
		ContentType:   request.Header.Get("Content-Type"),
		UserAgent:     request.Header.Get("User-Agent"),
		ContentLength: request.ContentLength,
		Body:          body,
	})
	daemon.mu.Unlock()
	daemon.mux.ServeHTTP(writer, request)
}

// Requests returns a snapshot of every request received so far.
func (daemon *fakeDaemon) Requests() []recordedRequest {
	daemon.mu.Lock()
	defer daemon.mu.Unlock()
	return append([]recordedRequest(nil), daemon.requests...)
}

// lastRequest returns the most recent request, failing the test if none
// arrived.
func (daemon *fakeDaemon) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	requests := daemon.Requests()
	if len(requests) == 0 {
		t.Fatal("daemon received no requests")
	}
	return requests[len(requests)-1]
}

// respond registers pattern to answer with the given HTTP status and
// raw body.
func (daemon *fakeDaemon) respond(pattern string, httpStatus int, body string) {
	daemon.mux.HandleFunc(pattern, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(httpStatus)
		io.WriteString(writer, body)
	})
}

// respondEnvelope registers pattern to answer with a JSON envelope.
func (daemon *fakeDaemon) respondEnvelope(pattern string, httpStatus int, envelope map[string]any) {
	encoded, err := json.Marshal(envelope)
	if err != nil {
		panic(err)
	}
	daemon.respond(pattern, httpStatus, string(encoded))
}

// writeAuthFile writes an auth file holding the test macaroon and
// returns its path.
func writeAuthFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".snap", "auth.json")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("creating auth directory: %v", err)
	}
	content := `{"id":7,"email":"tester@example.com","macaroon":"` + testMacaroon + `"}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing auth file: %v", err)
	}
	return path
}

// newTestClient starts daemon on a Unix socket and returns a client
// connected to it with a valid auth file.
func newTestClient(t *testing.T, daemon *fakeDaemon) *Client {
	t.Helper()
	socketPath := testutil.ServeUnix(t, daemon)
	return New(
		WithSocketPath(socketPath),
		WithAuthFile(writeAuthFile(t)),
	)
}

// decodeBody unmarshals a recorded request body into a generic map.
func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("request body %q is not a JSON object: %v", body, err)
	}
	return decoded
}

// requireKind fails the test unless err is an *Error of kind.
func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	target, ok := AsError(err)
	if !ok {
		t.Fatalf("error %v (%T) is not a *snapd.Error", err, err)
	}
	if target.Kind != kind {
		t.Fatalf("error kind = %s, want %s (error: %v)", target.Kind, kind, err)
	}
	return target
}
