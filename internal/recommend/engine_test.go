// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/campusevents/internal/models"
)

func newTestEngine(t *testing.T, max int, today string) *Engine {
	t.Helper()
	cfg := &Config{MaxResults: max, Location: time.UTC}
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	now, err := time.ParseInLocation("2006-01-02 15:04", today, time.UTC)
	if err != nil {
		t.Fatalf("bad clock %q: %v", today, err)
	}
	e.SetClock(func() time.Time { return now })
	return e
}

func event(id string, c models.Category, date, tm string) models.Event {
	return models.Event{ID: id, Title: "Event " + id, Category: c, Date: date, Time: tm}
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i := range events {
		out[i] = events[i].ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		e, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine(nil) error = %v", err)
		}
		if got := e.GetConfig().MaxResults; got != 3 {
			t.Errorf("MaxResults = %d, want 3", got)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		if _, err := NewEngine(&Config{MaxResults: 0}, zerolog.Nop()); err == nil {
			t.Error("expected error for MaxResults=0")
		}
	})

	t.Run("caller config left untouched", func(t *testing.T) {
		cfg := &Config{MaxResults: 2}
		e, err := NewEngine(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if cfg.Location != nil {
			t.Errorf("caller Location = %v, want nil", cfg.Location)
		}
		if got := e.GetConfig().Location; got != time.Local {
			t.Errorf("engine Location = %v, want time.Local", got)
		}

		cfg.MaxResults = 9
		if got := e.GetConfig().MaxResults; got != 2 {
			t.Errorf("MaxResults after caller edit = %d, want 2", got)
		}
	})
}

func TestRecommend_CommittedAndSocialScenario(t *testing.T) {
	e := newTestEngine(t, 3, "2023-11-10 12:00")
	catalog := []models.Event{
		event("1", models.CategoryWorkshop, "2023-11-15", "14:00-16:00"),
		event("2", models.CategorySocial, "2023-11-18", "19:00-23:00"),
	}

	res, err := e.Recommend(context.Background(), Request{
		Catalog:   catalog,
		Profile:   &models.UserProfile{ID: "user1"},
		Committed: catalog[:1],
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := ids(res.Events); !equalIDs(got, []string{"2"}) {
		t.Errorf("events = %v, want [2]", got)
	}
	want := "We recommend balancing your schedule with more Workshop, Social events!"
	if res.Reason != want {
		t.Errorf("reason = %q, want %q", res.Reason, want)
	}
}

func TestRecommend_Ordering(t *testing.T) {
	e := newTestEngine(t, 3, "2023-11-10 08:00")
	catalog := []models.Event{
		event("p1", models.CategoryWorkshop, "2023-10-01", "10:00-11:00"),
		event("p2", models.CategoryWorkshop, "2023-10-02", "10:00-11:00"),
		event("a", models.CategoryAcademic, "2023-12-01", "10:00-11:00"),
		event("b", models.CategoryWorkshop, "2023-11-20", "10:00-11:00"),
		event("c", models.CategoryWorkshop, "2023-11-21", "10:00-11:00"),
		event("d", models.CategoryAcademic, "2023-11-22", "10:00-11:00"),
	}
	profile := &models.UserProfile{ID: "u", AttendedEvents: []string{"p1", "p2"}}

	res, err := e.Recommend(context.Background(), Request{Catalog: catalog, Profile: profile})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := ids(res.Events); !equalIDs(got, []string{"d", "a", "b"}) {
		t.Errorf("events = %v, want [d a b]", got)
	}
	if len(res.Underrepresented) != 1 || res.Underrepresented[0] != models.CategoryAcademic {
		t.Errorf("underrepresented = %v, want [academic]", res.Underrepresented)
	}
	if res.Distribution[models.CategoryWorkshop] != 2 {
		t.Errorf("distribution[workshop] = %d, want 2", res.Distribution[models.CategoryWorkshop])
	}
	if want := "We recommend balancing your schedule with more Academic events!"; res.Reason != want {
		t.Errorf("reason = %q, want %q", res.Reason, want)
	}
}

func TestRecommend_Filters(t *testing.T) {
	e := newTestEngine(t, 10, "2023-11-15 20:00")
	committed := event("c", models.CategorySocial, "2023-11-20", "18:00-20:00")
	catalog := []models.Event{
		event("past", models.CategoryWorkshop, "2023-11-14", "10:00-11:00"),
		event("today", models.CategoryWorkshop, "2023-11-15", "10:00-11:00"),
		committed,
		event("clash", models.CategoryCareer, "2023-11-20", "19:00-21:00"),
		event("touch", models.CategoryCareer, "2023-11-20", "20:00-21:00"),
		event("free", models.CategoryCareer, "2023-11-20", "21:00-22:00"),
		event("baddate", models.CategoryCareer, "someday", "10:00"),
	}

	res, err := e.Recommend(context.Background(), Request{
		Catalog:   catalog,
		Profile:   &models.UserProfile{ID: "u"},
		Committed: []models.Event{committed},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	got := ids(res.Events)
	if !equalIDs(got, []string{"today", "free"}) {
		t.Errorf("events = %v, want [today free]", got)
	}
	if m := e.GetMetrics(); m.ConflictsSeen != 2 {
		t.Errorf("ConflictsSeen = %d, want 2", m.ConflictsSeen)
	}
}

func TestRecommend_Truncates(t *testing.T) {
	e := newTestEngine(t, 3, "2023-01-01 00:00")
	var catalog []models.Event
	for _, d := range []string{"2023-02-05", "2023-02-01", "2023-02-04", "2023-02-02", "2023-02-03"} {
		catalog = append(catalog, event(d, models.CategorySports, d, "10:00-11:00"))
	}

	res, err := e.Recommend(context.Background(), Request{Catalog: catalog, Profile: &models.UserProfile{ID: "u"}})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := ids(res.Events); !equalIDs(got, []string{"2023-02-01", "2023-02-02", "2023-02-03"}) {
		t.Errorf("events = %v", got)
	}
}

func TestRecommend_Reasons(t *testing.T) {
	t.Run("generic when balanced", func(t *testing.T) {
		e := newTestEngine(t, 3, "2023-11-10 00:00")
		catalog := []models.Event{
			event("p1", models.CategoryWorkshop, "2023-10-01", "10:00"),
			event("p2", models.CategorySocial, "2023-10-01", "12:00"),
			event("f1", models.CategoryWorkshop, "2023-11-12", "10:00"),
		}
		profile := &models.UserProfile{ID: "u", AttendedEvents: []string{"p1", "p2"}}
		res, err := e.Recommend(context.Background(), Request{Catalog: catalog, Profile: profile})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if res.Reason != ReasonGeneric {
			t.Errorf("reason = %q, want %q", res.Reason, ReasonGeneric)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		e := newTestEngine(t, 3, "2024-01-01 00:00")
		catalog := []models.Event{event("1", models.CategoryWorkshop, "2023-11-15", "14:00-16:00")}
		res, err := e.Recommend(context.Background(), Request{Catalog: catalog, Profile: &models.UserProfile{ID: "u"}})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(res.Events) != 0 {
			t.Errorf("events = %v, want none", ids(res.Events))
		}
		if res.Reason != ReasonNoMatches {
			t.Errorf("reason = %q, want %q", res.Reason, ReasonNoMatches)
		}
		if m := e.GetMetrics(); m.EmptyResults != 1 {
			t.Errorf("EmptyResults = %d, want 1", m.EmptyResults)
		}
	})
}

func TestRecommend_Errors(t *testing.T) {
	e := newTestEngine(t, 3, "2023-11-10 00:00")

	if _, err := e.Recommend(context.Background(), Request{}); !errors.Is(err, ErrNoProfile) {
		t.Errorf("err = %v, want ErrNoProfile", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Recommend(ctx, Request{Profile: &models.UserProfile{ID: "u"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
