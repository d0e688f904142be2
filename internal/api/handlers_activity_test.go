// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/tomtom215/campusevents/internal/audit"
)

// waitForAudit polls until userID has at least n stored audit events.
func waitForAudit(t *testing.T, env *testEnv, userID string, n int) []audit.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		events, err := env.audit.Query(context.Background(), audit.QueryFilter{ActorID: userID})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(events) >= n {
			return events
		}
		if time.Now().After(deadline) {
			t.Fatalf("got %d audit events for %s, want %d", len(events), userID, n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestActivity_RecordsSecurityEvents(t *testing.T) {
	env := newTestEnv(t, withAudit())

	rec := env.do(http.MethodPost, "/api/v1/auth/login", "", LoginRequest{UserID: "user1"})
	expectStatus(t, rec, http.StatusOK)
	var login LoginResponse
	decodeEnvelope(t, rec, &login)

	expectStatus(t, env.do(http.MethodPost, "/api/v1/checkins", login.Token, CheckInRequest{Code: "event-2"}), http.StatusOK)
	expectErrorCode(t, env.do(http.MethodPost, "/api/v1/checkins", login.Token, CheckInRequest{Code: "event-2"}), http.StatusConflict, "ALREADY_CHECKED_IN")
	expectErrorCode(t, env.do(http.MethodPost, "/api/v1/auth/login", "", LoginRequest{UserID: "ghost"}), http.StatusUnauthorized, "INVALID_CREDENTIALS")

	events := waitForAudit(t, env, "user1", 3)

	rec = env.do(http.MethodGet, "/api/v1/me/activity", login.Token, nil)
	expectStatus(t, rec, http.StatusOK)
	var resp ActivityResponse
	decodeEnvelope(t, rec, &resp)
	if resp.Count != len(events) || resp.Count != 3 {
		t.Fatalf("count = %d, want 3 (stored %d)", resp.Count, len(events))
	}

	var success, rejected, logins int
	for _, e := range resp.Events {
		if e.ActorID != "user1" {
			t.Errorf("foreign event in activity: %+v", e)
		}
		switch {
		case e.Type == audit.EventTypeLoginSuccess:
			logins++
		case e.Type == audit.EventTypeCheckIn && e.Outcome == audit.OutcomeSuccess:
			success++
			if e.TargetID != "2" {
				t.Errorf("check-in target = %q, want 2", e.TargetID)
			}
		case e.Type == audit.EventTypeCheckIn && e.Reason == "ALREADY_CHECKED_IN":
			rejected++
		}
	}
	if logins != 1 || success != 1 || rejected != 1 {
		t.Errorf("logins=%d success=%d rejected=%d, want 1 each", logins, success, rejected)
	}

	ghost := waitForAudit(t, env, "ghost", 1)
	if ghost[0].Type != audit.EventTypeLoginFailure || ghost[0].Reason != "unknown_user" {
		t.Errorf("ghost event = %+v", ghost[0])
	}
}

func TestActivity_Logout(t *testing.T) {
	env := newTestEnv(t, withAudit())
	tok := env.token("user2")

	expectStatus(t, env.do(http.MethodPost, "/api/v1/auth/logout", tok, nil), http.StatusOK)

	events := waitForAudit(t, env, "user2", 1)
	if events[0].Type != audit.EventTypeLogout {
		t.Errorf("type = %q, want logout", events[0].Type)
	}
}

func TestActivity_Limit(t *testing.T) {
	env := newTestEnv(t, withAudit())
	tok := env.token("user1")

	for _, code := range []string{"event-1", "event-2", "event-5"} {
		env.do(http.MethodPost, "/api/v1/checkins", tok, CheckInRequest{Code: code})
	}
	waitForAudit(t, env, "user1", 3)

	rec := env.do(http.MethodGet, "/api/v1/me/activity?limit=2", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	var resp ActivityResponse
	decodeEnvelope(t, rec, &resp)
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}

	for _, bad := range []string{"0", "201", "x"} {
		rec := env.do(http.MethodGet, "/api/v1/me/activity?limit="+bad, tok, nil)
		expectErrorCode(t, rec, http.StatusBadRequest, "INVALID_REQUEST")
	}
}

func TestActivity_Disabled(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/v1/me/activity", env.token("user1"), nil)
	expectErrorCode(t, rec, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}

func TestActivity_RequiresSession(t *testing.T) {
	env := newTestEnv(t, withAudit())
	rec := env.do(http.MethodGet, "/api/v1/me/activity", "", nil)
	expectStatus(t, rec, http.StatusUnauthorized)
}
