// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapd is a typed client for the snapd local control API.
//
// snapd listens on a Unix domain socket (by default /run/snapd.socket)
// and speaks HTTP/1.1 with JSON bodies under the /v2/ prefix. Every
// response carries an envelope:
//
//	{"type": "sync", "status-code": 200, "status": "OK", "result": ..., "change": "..."}
//
// [Transport] performs exactly one request/response exchange per call
// over a fresh connection. HTTP 200 and 202 responses are decoded into
// an [Envelope] and handed back to the caller, who decides which
// envelope status-code counts as success. Any other HTTP status is
// converted into an [*Error] of kind [KindDaemon] carrying the daemon's
// result.message and result.kind.
//
// [Client] layers the named operations (Login, ListSnaps, Install,
// GetConf, Connect, Abort, ...) on top of Transport. Operations that
// mutate state return the id of a daemon-side change; polling that
// change to completion is left to the caller.
//
// Failures of a daemon call are [*Error] values, usually wrapped with
// the operation name. Use [AsError] or [errors.As] to inspect
// [Error.Kind]:
//
//   - [KindTransport]: the socket exchange itself failed (dial, write,
//     read, undecodable JSON, empty body on a success status).
//   - [KindDaemon]: snapd answered with a non-success HTTP status.
//   - [KindValidation]: a local argument was malformed, or the envelope
//     did not have the status-code or result shape the operation
//     expects ([ErrMalformedResponse]).
//
// Credentials are read lazily from the auth file ($HOME/.snap/auth.json
// unless configured otherwise) the first time an authenticated
// operation runs without an explicit [*Credential], then cached for the
// lifetime of the Client. A missing or unparseable auth file fails the
// operation with a wrapped filesystem or JSON error.
//
// No timeouts are applied by this package. Bound calls with a context
// deadline when a hung daemon must not hang the caller.
package snapd
