// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/tomtom215/campusevents/internal/notify"
)

func TestNotifications_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token("user1")

	expectStatus(t, env.do(http.MethodPost, "/api/v1/checkins", tok, CheckInRequest{Code: "event-1"}), http.StatusOK)
	if _, err := env.notify.Add(context.Background(), "user1", notify.Input{Title: "Reminder", Message: "Hackathon tomorrow"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	rec := env.do(http.MethodGet, "/api/v1/me/notifications", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	var inbox NotificationsResponse
	decodeEnvelope(t, rec, &inbox)
	if len(inbox.Notifications) != 2 || inbox.Unread != 2 {
		t.Fatalf("inbox = %+v, want 2 unread", inbox)
	}
	if inbox.Notifications[0].Title != "Reminder" || inbox.Notifications[1].Title != "Points Awarded" {
		t.Errorf("order = %q, %q; want newest first", inbox.Notifications[0].Title, inbox.Notifications[1].Title)
	}
	awarded := inbox.Notifications[1]
	if awarded.ActionURL != "/event/1" {
		t.Errorf("actionUrl = %q", awarded.ActionURL)
	}

	expectStatus(t, env.do(http.MethodPost, "/api/v1/me/notifications/"+awarded.ID+"/read", tok, nil), http.StatusOK)

	rec = env.do(http.MethodGet, "/api/v1/me", tok, nil)
	var profile ProfileResponse
	decodeEnvelope(t, rec, &profile)
	if profile.UnreadNotifications != 1 {
		t.Errorf("unread after marking one = %d, want 1", profile.UnreadNotifications)
	}

	rec = env.do(http.MethodPost, "/api/v1/me/notifications/read-all", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	var marked map[string]int
	decodeEnvelope(t, rec, &marked)
	if marked["marked"] != 1 {
		t.Errorf("marked = %d, want 1", marked["marked"])
	}

	expectStatus(t, env.do(http.MethodDelete, "/api/v1/me/notifications/"+awarded.ID, tok, nil), http.StatusOK)
	rec = env.do(http.MethodGet, "/api/v1/me/notifications", tok, nil)
	decodeEnvelope(t, rec, &inbox)
	if len(inbox.Notifications) != 1 || inbox.Unread != 0 {
		t.Errorf("inbox after delete = %+v", inbox)
	}
}

func TestNotifications_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token("user1")

	expectErrorCode(t, env.do(http.MethodPost, "/api/v1/me/notifications/missing/read", tok, nil), http.StatusNotFound, "NOT_FOUND")
	expectErrorCode(t, env.do(http.MethodDelete, "/api/v1/me/notifications/missing", tok, nil), http.StatusNotFound, "NOT_FOUND")
}

func TestNotifications_ScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	n, err := env.notify.Add(context.Background(), "user2", notify.Input{Title: "Hi", Message: "For user2"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	rec := env.do(http.MethodGet, "/api/v1/me/notifications", env.token("user1"), nil)
	var inbox NotificationsResponse
	decodeEnvelope(t, rec, &inbox)
	if len(inbox.Notifications) != 0 {
		t.Errorf("user1 sees %d notifications, want 0", len(inbox.Notifications))
	}

	expectErrorCode(t, env.do(http.MethodDelete, "/api/v1/me/notifications/"+n.ID, env.token("user1"), nil), http.StatusNotFound, "NOT_FOUND")
}
