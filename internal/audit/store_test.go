// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/campusevents/internal/store"
)

var base = time.Date(2023, 11, 1, 9, 0, 0, 0, time.UTC)

func seedStore(t *testing.T) *KVStore {
	t.Helper()
	s := NewKVStore(store.NewMemoryKV())
	events := []Event{
		{ID: "e1", Timestamp: base, Type: EventTypeLoginSuccess, Outcome: OutcomeSuccess, ActorID: "user1"},
		{ID: "e2", Timestamp: base.Add(time.Minute), Type: EventTypeCheckIn, Outcome: OutcomeSuccess, ActorID: "user1", TargetID: "1"},
		{ID: "e3", Timestamp: base.Add(2 * time.Minute), Type: EventTypeLoginFailure, Outcome: OutcomeFailure, ActorID: "ghost", Reason: "unknown_user"},
		{ID: "e4", Timestamp: base.Add(3 * time.Minute), Type: EventTypeCheckIn, Outcome: OutcomeFailure, ActorID: "user1", TargetID: "1", Reason: "ALREADY_CHECKED_IN"},
		{ID: "e5", Timestamp: base.Add(4 * time.Minute), Type: EventTypeLogout, Outcome: OutcomeSuccess, ActorID: "user2"},
	}
	for i := range events {
		if err := s.Save(context.Background(), &events[i]); err != nil {
			t.Fatalf("Save(%s): %v", events[i].ID, err)
		}
	}
	return s
}

func ids(events []Event) []string {
	out := make([]string, len(events))
	for i := range events {
		out[i] = events[i].ID
	}
	return out
}

func TestKVStore_Query(t *testing.T) {
	s := seedStore(t)

	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{"all newest first", QueryFilter{}, []string{"e5", "e4", "e3", "e2", "e1"}},
		{"by actor", QueryFilter{ActorID: "user1"}, []string{"e4", "e2", "e1"}},
		{"by type", QueryFilter{Types: []EventType{EventTypeCheckIn}}, []string{"e4", "e2"}},
		{"since", QueryFilter{Since: base.Add(2 * time.Minute)}, []string{"e5", "e4", "e3"}},
		{"limit keeps newest", QueryFilter{ActorID: "user1", Limit: 2}, []string{"e4", "e2"}},
		{"no match", QueryFilter{ActorID: "nobody"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("Query() = %v, want %v", gotIDs, tt.want)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.want[i] {
					t.Fatalf("Query() = %v, want %v", gotIDs, tt.want)
				}
			}
		})
	}
}

func TestKVStore_Delete(t *testing.T) {
	s := seedStore(t)

	n, err := s.Delete(context.Background(), base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Delete() = %d, want 2", n)
	}

	got, _ := s.Query(context.Background(), QueryFilter{})
	if len(got) != 3 || got[len(got)-1].ID != "e3" {
		t.Errorf("remaining = %v, want e5 e4 e3", ids(got))
	}
}

func TestKeyTime(t *testing.T) {
	e := &Event{ID: "abc", Timestamp: base}
	ts, ok := keyTime(eventKey(e))
	if !ok || !ts.Equal(base) {
		t.Errorf("keyTime() = %v, %v; want %v", ts, ok, base)
	}
	if _, ok := keyTime("audit:garbage"); ok {
		t.Error("keyTime() should reject malformed keys")
	}
}
