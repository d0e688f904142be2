// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/campusevents/internal/catalog"
	"github.com/tomtom215/campusevents/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := store.NewRepository(store.NewMemoryKV())
	if _, err := repo.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return NewService(repo, catalog.NewProvider(repo, 0), zerolog.Nop())
}

func TestService_Toggle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	before, err := s.Status(ctx, "user1", "1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if before.Attending {
		t.Fatal("user should not be attending initially")
	}

	on, err := s.Toggle(ctx, "user1", "1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !on.Attending || on.Attendees != before.Attendees+1 {
		t.Errorf("after first toggle = %+v", on)
	}

	off, err := s.Toggle(ctx, "user1", "1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if off.Attending || off.Attendees != before.Attendees {
		t.Errorf("after second toggle = %+v", off)
	}
}

func TestService_ToggleUnknownEvent(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Toggle(context.Background(), "user1", "99"); !errors.Is(err, catalog.ErrEventNotFound) {
		t.Errorf("Toggle() error = %v, want ErrEventNotFound", err)
	}
}

func TestService_Committed(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	empty, err := s.Committed(ctx, "user2")
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Committed() = %v, want empty slice", empty)
	}

	for _, id := range []string{"5", "1", "3"} {
		if _, err := s.Toggle(ctx, "user2", id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Toggle(ctx, "user2", "3"); err != nil {
		t.Fatal(err)
	}

	got, err := s.Committed(ctx, "user2")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "5" {
		t.Errorf("Committed() = %v, want events 1 and 5 in date order", got)
	}

	other, err := s.Committed(ctx, "user3")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("RSVPs leaked across users: %v", other)
	}
}
