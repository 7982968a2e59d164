// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/snapclient/lib/testutil"
)

func TestGetConf(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	daemon.respond("GET /v2/snaps/core/conf", http.StatusOK,
		`{"type":"sync","status-code":200,"result":{"refresh.timer":"4:00-7:00","experimental":{"hotplug":true}}}`)
	client := newTestClient(t, daemon)

	values, err := client.GetConf(context.Background(), "core", []string{"refresh.timer", "experimental"})
	if err != nil {
		t.Fatalf("GetConf: %v", err)
	}
	if values["refresh.timer"] != "4:00-7:00" {
		t.Errorf("refresh.timer = %v", values["refresh.timer"])
	}
	nested, ok := values["experimental"].(map[string]any)
	if !ok || nested["hotplug"] != true {
		t.Errorf("experimental = %v", values["experimental"])
	}

	request := daemon.lastRequest(t)
	query, err := url.ParseQuery(request.RawQuery)
	if err != nil {
		t.Fatalf("parsing query %q: %v", request.RawQuery, err)
	}
	if got := query.Get("keys"); got != "refresh.timer,experimental" {
		t.Errorf("keys = %q, want refresh.timer,experimental", got)
	}
	if len(request.Body) != 0 {
		t.Errorf("GET carried body %q", request.Body)
	}
	if request.Authorization != `Macaroon root="`+testMacaroon+`"` {
		t.Errorf("Authorization = %q", request.Authorization)
	}
}

func TestGetConf_AllKeys(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	daemon.respond("GET /v2/snaps/core/conf", http.StatusOK, `{"type":"sync","status-code":200,"result":{}}`)
	client := newTestClient(t, daemon)

	values, err := client.GetConf(context.Background(), "core", nil)
	if err != nil {
		t.Fatalf("GetConf: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("values = %v, want empty", values)
	}
	if query := daemon.lastRequest(t).RawQuery; query != "" {
		t.Errorf("query = %q, want none", query)
	}
}

func TestGetConf_RequiresCredential(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	client := New(
		WithSocketPath(testutil.ServeUnix(t, daemon)),
		WithAuthFile(filepath.Join(t.TempDir(), "auth.json")),
	)

	_, err := client.GetConf(context.Background(), "core", []string{"x"})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist in chain", err)
	}
	if len(daemon.Requests()) != 0 {
		t.Error("request sent without credential")
	}
}

func TestPutConf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		httpStatus int
		body       string
		wantStatus string
	}{
		{
			name:       "sync",
			httpStatus: http.StatusOK,
			body:       `{"type":"sync","status-code":200,"status":"OK","result":null}`,
			wantStatus: "OK",
		},
		{
			name:       "async",
			httpStatus: http.StatusAccepted,
			body:       `{"type":"async","status-code":202,"status":"Accepted","change":"12"}`,
			wantStatus: "Accepted",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			daemon := newFakeDaemon()
			daemon.respond("PUT /v2/snaps/core/conf", test.httpStatus, test.body)
			client := newTestClient(t, daemon)

			status, err := client.PutConf(context.Background(), "core", map[string]any{"refresh.timer": "fri"})
			if err != nil {
				t.Fatalf("PutConf: %v", err)
			}
			if status != test.wantStatus {
				t.Errorf("status = %q, want %q", status, test.wantStatus)
			}
			if body := string(daemon.lastRequest(t).Body); body != `{"refresh.timer":"fri"}` {
				t.Errorf("body = %s", body)
			}
		})
	}
}

func TestPutConf_NilValuesSendsEmptyObject(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	daemon.respond("PUT /v2/snaps/core/conf", http.StatusOK, `{"type":"sync","status-code":200,"status":"OK"}`)
	client := newTestClient(t, daemon)

	if _, err := client.PutConf(context.Background(), "core", nil); err != nil {
		t.Fatalf("PutConf: %v", err)
	}
	if body := string(daemon.lastRequest(t).Body); body != `{}` {
		t.Errorf("body = %s, want {}", body)
	}
}

func TestPutConf_UnexpectedStatusCode(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	daemon.respond("PUT /v2/snaps/core/conf", http.StatusOK, `{"type":"sync","status-code":204}`)
	client := newTestClient(t, daemon)

	_, err := client.PutConf(context.Background(), "core", map[string]any{"a": 1})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}
