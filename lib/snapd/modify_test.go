// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapd

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"slices"
	"testing"

	"github.com/bureau-foundation/snapclient/lib/testutil"
)

// respondChange registers an async answer for POST path carrying
// change.
func respondChange(daemon *fakeDaemon, path, change string) {
	daemon.respondEnvelope("POST "+path, http.StatusAccepted, map[string]any{
		"type":        "async",
		"status-code": 202,
		"status":      "Accepted",
		"result":      nil,
		"change":      change,
	})
}

func TestInstall_Body(t *testing.T) {
	t.Parallel()

	change := testutil.UniqueID("change")
	daemon := newFakeDaemon()
	respondChange(daemon, "/v2/snaps/hello", change)
	client := newTestClient(t, daemon)

	got, err := client.Install(context.Background(), "hello", nil, ModifyOptions{Channel: String("stable")})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if got != change {
		t.Errorf("change = %q, want %q", got, change)
	}

	request := daemon.lastRequest(t)
	if request.Method != http.MethodPost || request.Path != "/v2/snaps/hello" {
		t.Errorf("request = %s %s", request.Method, request.Path)
	}
	if string(request.Body) != `{"action":"install","channel":"stable"}` {
		t.Errorf("body = %s", request.Body)
	}
	if request.Authorization != `Macaroon root="`+testMacaroon+`"` {
		t.Errorf("Authorization = %q", request.Authorization)
	}
}

func TestModify_OptionsRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		action   string
		options  ModifyOptions
		wantKeys []string
	}{
		{
			name:     "classic with channel",
			action:   ActionInstall,
			options:  ModifyOptions{Classic: true, Channel: String("edge")},
			wantKeys: []string{"action", "channel", "classic"},
		},
		{
			name:     "no options",
			action:   ActionRemove,
			wantKeys: []string{"action"},
		},
		{
			name:     "all flags",
			action:   ActionRefresh,
			options:  ModifyOptions{DevMode: true, JailMode: true, IgnoreValidation: true, Version: String("1.2")},
			wantKeys: []string{"action", "devmode", "ignore-validation", "jailmode", "version"},
		},
		{
			name:     "empty channel is still sent",
			action:   ActionSwitch,
			options:  ModifyOptions{Channel: String("")},
			wantKeys: []string{"action", "channel"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			daemon := newFakeDaemon()
			respondChange(daemon, "/v2/snaps/hello", "17")
			client := newTestClient(t, daemon)

			if _, err := client.Modify(context.Background(), test.action, "hello", nil, test.options); err != nil {
				t.Fatalf("Modify: %v", err)
			}

			body := decodeBody(t, daemon.lastRequest(t).Body)
			keys := slices.Sorted(maps.Keys(body))
			if !slices.Equal(keys, test.wantKeys) {
				t.Errorf("body keys = %v, want %v", keys, test.wantKeys)
			}
			if body["action"] != test.action {
				t.Errorf("action = %v, want %s", body["action"], test.action)
			}
			if test.options.Classic && body["classic"] != true {
				t.Errorf("classic = %v, want true", body["classic"])
			}
			if test.options.Channel != nil && body["channel"] != *test.options.Channel {
				t.Errorf("channel = %v, want %q", body["channel"], *test.options.Channel)
			}
		})
	}
}

func TestModify_Wrappers(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	respondChange(daemon, "/v2/snaps/hello", "5")
	client := newTestClient(t, daemon)
	ctx := context.Background()

	calls := []struct {
		action string
		call   func() (string, error)
	}{
		{ActionInstall, func() (string, error) { return client.Install(ctx, "hello", nil, ModifyOptions{}) }},
		{ActionRemove, func() (string, error) { return client.Remove(ctx, "hello", nil, ModifyOptions{}) }},
		{ActionSwitch, func() (string, error) { return client.Switch(ctx, "hello", nil, ModifyOptions{}) }},
		{ActionRefresh, func() (string, error) { return client.Refresh(ctx, "hello", nil, ModifyOptions{}) }},
		{ActionRevert, func() (string, error) { return client.Revert(ctx, "hello", nil, ModifyOptions{}) }},
		{ActionEnable, func() (string, error) { return client.Enable(ctx, "hello", nil, ModifyOptions{}) }},
		{ActionDisable, func() (string, error) { return client.Disable(ctx, "hello", nil, ModifyOptions{}) }},
	}
	for _, call := range calls {
		change, err := call.call()
		if err != nil {
			t.Fatalf("%s: %v", call.action, err)
		}
		if change != "5" {
			t.Errorf("%s: change = %q, want 5", call.action, change)
		}
		if action := decodeBody(t, daemon.lastRequest(t).Body)["action"]; action != call.action {
			t.Errorf("action = %v, want %s", action, call.action)
		}
	}
}

func TestModify_ExplicitCredential(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	respondChange(daemon, "/v2/snaps/hello", "8")
	socketPath := testutil.ServeUnix(t, daemon)

	// The auth file does not exist: an explicit credential must be
	// used without ever touching it.
	client := New(WithSocketPath(socketPath), WithAuthFile("/nonexistent/auth.json"))
	explicit := &Credential{Email: "other@example.com", Macaroon: "explicit-token"}

	if _, err := client.Install(context.Background(), "hello", explicit, ModifyOptions{}); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if got := daemon.lastRequest(t).Authorization; got != `Macaroon root="explicit-token"` {
		t.Errorf("Authorization = %q", got)
	}
}

func TestModify_NotAsync(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	daemon.respond("POST /v2/snaps/hello", http.StatusOK, `{"type":"sync","status-code":200,"result":{}}`)
	client := newTestClient(t, daemon)

	_, err := client.Install(context.Background(), "hello", nil, ModifyOptions{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
	requireKind(t, err, KindValidation)
}

func TestModify_AsyncWithoutChange(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	daemon.respond("POST /v2/snaps/hello", http.StatusAccepted, `{"type":"async","status-code":202}`)
	client := newTestClient(t, daemon)

	_, err := client.Install(context.Background(), "hello", nil, ModifyOptions{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestModify_LoginRequired(t *testing.T) {
	t.Parallel()

	daemon := newFakeDaemon()
	daemon.respond("POST /v2/snaps/hello", http.StatusUnauthorized,
		`{"type":"error","status-code":401,"status":"Unauthorized","result":{"message":"access denied","kind":"login-required"}}`)
	client := newTestClient(t, daemon)

	_, err := client.Remove(context.Background(), "hello", nil, ModifyOptions{})
	requireKind(t, err, KindDaemon)
	if !IsDaemonKind(err, "login-required") {
		t.Errorf("IsDaemonKind(login-required) = false for %v", err)
	}
}

func TestModify_ValidatesBeforeLoadingCredential(t *testing.T) {
	t.Parallel()

	client := New(WithSocketPath("/nonexistent.socket"), WithAuthFile("/nonexistent/auth.json"))
	reads := 0
	client.readFile = func(string) ([]byte, error) {
		reads++
		return nil, errors.New("unexpected read")
	}

	_, err := client.Install(context.Background(), "", nil, ModifyOptions{})
	requireKind(t, err, KindValidation)
	if reads != 0 {
		t.Errorf("auth file read %d times, want 0", reads)
	}
}
