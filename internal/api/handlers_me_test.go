// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tomtom215/campusevents/internal/calendar"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/recommend"
)

func TestProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/me", env.token("user1"), nil)
	expectStatus(t, rec, http.StatusOK)
	var resp ProfileResponse
	decodeEnvelope(t, rec, &resp)
	if resp.Profile == nil || resp.Profile.Name != "Jane Student" || resp.Profile.Points != 50 {
		t.Errorf("profile = %+v", resp.Profile)
	}
	if resp.UnreadNotifications != 0 {
		t.Errorf("unread = %d, want 0", resp.UnreadNotifications)
	}

	expectErrorCode(t, env.do(http.MethodGet, "/api/v1/me", env.token("ghost"), nil), http.StatusNotFound, "NOT_FOUND")
}

func TestUpdateShareProfile(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token("user1")

	rec := env.do(http.MethodPut, "/api/v1/me/share-profile", tok, map[string]bool{"shareProfile": false})
	expectStatus(t, rec, http.StatusOK)
	var user models.UserProfile
	decodeEnvelope(t, rec, &user)
	if user.ShareProfile {
		t.Error("shareProfile should be false in the response")
	}

	stored, err := env.repo.User(context.Background(), "user1")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if stored.ShareProfile {
		t.Error("shareProfile should be persisted as false")
	}

	expectErrorCode(t, env.do(http.MethodPut, "/api/v1/me/share-profile", tok, `{}`), http.StatusBadRequest, "VALIDATION_ERROR")
	expectErrorCode(t, env.do(http.MethodPut, "/api/v1/me/share-profile", tok, `{"shareProfile":"yes"}`), http.StatusBadRequest, "INVALID_REQUEST")
}

func TestCalendarExport(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token("user1")

	expectErrorCode(t, env.do(http.MethodGet, "/api/v1/me/calendar.ics", tok, nil), http.StatusNotFound, "NOT_FOUND")

	for _, id := range []string{"1", "2"} {
		expectStatus(t, env.do(http.MethodPost, "/api/v1/events/"+id+"/rsvp", tok, nil), http.StatusOK)
	}

	rec := env.do(http.MethodGet, "/api/v1/me/calendar.ics", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Header().Get("Content-Type"); got != calendar.ContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, calendarFilename) {
		t.Errorf("Content-Disposition = %q", got)
	}

	cal, err := ical.NewDecoder(rec.Body).Decode()
	if err != nil {
		t.Fatalf("decode calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("VEVENTs = %d, want 2", len(events))
	}
	start, err := events[0].DateTimeStart(time.UTC)
	if err != nil {
		t.Fatalf("DateTimeStart: %v", err)
	}
	if want := time.Date(2023, 11, 15, 14, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("first DTSTART = %v, want %v", start, want)
	}
}

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token("user1")

	expectStatus(t, env.do(http.MethodPost, "/api/v1/events/2/rsvp", tok, nil), http.StatusOK)

	rec := env.do(http.MethodGet, "/api/v1/me/recommendations", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	var res recommend.Result
	decodeEnvelope(t, rec, &res)

	if len(res.Events) == 0 || len(res.Events) > 3 {
		t.Fatalf("recommended %d events, want 1..3", len(res.Events))
	}
	for _, ev := range res.Events {
		if ev.ID == "2" {
			t.Error("committed event 2 must not be recommended")
		}
		if ev.Date < "2023-11-01" {
			t.Errorf("event %s on %s is before today", ev.ID, ev.Date)
		}
	}
	if res.Reason == "" {
		t.Error("reason is empty")
	}
}

func TestRecommendations_NothingUpcoming(t *testing.T) {
	env := newTestEnv(t)
	env.engine.SetClock(func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) })

	rec := env.do(http.MethodGet, "/api/v1/me/recommendations", env.token("user1"), nil)
	expectStatus(t, rec, http.StatusOK)
	var res recommend.Result
	decodeEnvelope(t, rec, &res)
	if len(res.Events) != 0 {
		t.Errorf("events = %d, want 0", len(res.Events))
	}
	if res.Reason != recommend.ReasonNoMatches {
		t.Errorf("reason = %q, want %q", res.Reason, recommend.ReasonNoMatches)
	}
}
