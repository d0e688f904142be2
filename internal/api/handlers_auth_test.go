// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/campusevents/internal/metrics"
)

func TestLogin_IssuesUsableToken(t *testing.T) {
	env := newTestEnv(t)
	before := testutil.ToFloat64(metrics.SessionsIssued)

	rec := env.do(http.MethodPost, "/api/v1/auth/login", "", LoginRequest{UserID: "user2"})
	expectStatus(t, rec, http.StatusOK)
	var resp LoginResponse
	decodeEnvelope(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("token is empty")
	}
	if resp.User == nil || resp.User.Name != "Alice Chen" {
		t.Errorf("user = %+v", resp.User)
	}
	if resp.ExpiresAt.IsZero() {
		t.Error("expiresAt is zero")
	}
	if got := testutil.ToFloat64(metrics.SessionsIssued) - before; got != 1 {
		t.Errorf("sessions issued = %v, want 1", got)
	}

	rec = env.do(http.MethodGet, "/api/v1/me", resp.Token, nil)
	expectStatus(t, rec, http.StatusOK)
	var profile ProfileResponse
	decodeEnvelope(t, rec, &profile)
	if profile.Profile.ID != "user2" {
		t.Errorf("profile id = %q, want user2", profile.Profile.ID)
	}
}

func TestLogin_Rejects(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"unknown user", LoginRequest{UserID: "nobody"}, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"missing user id", `{}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"key separator in id", LoginRequest{UserID: "user1:x"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed json", "not json", http.StatusBadRequest, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/v1/auth/login", "", tt.body)
			expectErrorCode(t, rec, tt.status, tt.code)
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/auth/login", "", LoginRequest{UserID: "user1"})
	var resp LoginResponse
	decodeEnvelope(t, rec, &resp)

	expectStatus(t, env.do(http.MethodPost, "/api/v1/auth/logout", resp.Token, nil), http.StatusOK)

	e := expectErrorCode(t, env.do(http.MethodGet, "/api/v1/me", resp.Token, nil), http.StatusUnauthorized, "UNAUTHORIZED")
	if e.Error.Message != "Session has been logged out" {
		t.Errorf("message = %q", e.Error.Message)
	}

	// Other sessions for the same user are unaffected.
	expectStatus(t, env.do(http.MethodGet, "/api/v1/me", env.token("user1"), nil), http.StatusOK)
}
