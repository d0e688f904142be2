// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/store"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent map[string][]string
}

func (p *recordingPublisher) PublishNotification(userID string, n *models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sent == nil {
		p.sent = make(map[string][]string)
	}
	p.sent[userID] = append(p.sent[userID], n.Title)
}

func newTestService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()
	svc := NewService(store.NewRepository(store.NewMemoryKV()), zerolog.Nop())
	pub := &recordingPublisher{}
	svc.SetPublisher(pub)
	fixed := time.Date(2023, 11, 15, 9, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return fixed })
	return svc, pub
}

func TestService_AddAndList(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	list, err := svc.List(ctx, "user1")
	if err != nil || len(list) != 0 {
		t.Fatalf("List() on empty = %v, %v", list, err)
	}

	first, err := svc.Add(ctx, "user1", Input{Title: "First", Message: "one"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if first.ID == "" || first.Read {
		t.Errorf("Add() = %+v, want new unread notification with ID", first)
	}
	if _, err := svc.Add(ctx, "user1", Input{Title: "Second", Message: "two", ActionURL: "/event/2"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	list, err = svc.List(ctx, "user1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Title != "Second" || list[1].Title != "First" {
		t.Errorf("List() = %+v, want newest first", list)
	}
	if list[0].ActionURL != "/event/2" {
		t.Errorf("ActionURL = %q", list[0].ActionURL)
	}
	if got := pub.sent["user1"]; len(got) != 2 {
		t.Errorf("published = %v, want 2 notifications", got)
	}

	other, _ := svc.List(ctx, "user2")
	if len(other) != 0 {
		t.Errorf("user2 inbox = %v, want empty", other)
	}
}

func TestService_ReadState(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Add(ctx, "u", Input{Title: "A", Message: "a"})
	if _, err := svc.Add(ctx, "u", Input{Title: "B", Message: "b"}); err != nil {
		t.Fatal(err)
	}

	if n, _ := svc.UnreadCount(ctx, "u"); n != 2 {
		t.Errorf("UnreadCount() = %d, want 2", n)
	}
	if err := svc.MarkAsRead(ctx, "u", a.ID); err != nil {
		t.Fatalf("MarkAsRead() error = %v", err)
	}
	if n, _ := svc.UnreadCount(ctx, "u"); n != 1 {
		t.Errorf("UnreadCount() after MarkAsRead = %d, want 1", n)
	}
	if err := svc.MarkAsRead(ctx, "u", "nope"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("MarkAsRead(unknown) err = %v", err)
	}

	changed, err := svc.MarkAllAsRead(ctx, "u")
	if err != nil || changed != 1 {
		t.Errorf("MarkAllAsRead() = %d, %v; want 1", changed, err)
	}
	if n, _ := svc.UnreadCount(ctx, "u"); n != 0 {
		t.Errorf("UnreadCount() after MarkAllAsRead = %d", n)
	}
}

func TestService_Clear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Add(ctx, "u", Input{Title: "A", Message: "a"})
	b, _ := svc.Add(ctx, "u", Input{Title: "B", Message: "b"})

	if err := svc.Clear(ctx, "u", a.ID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	list, _ := svc.List(ctx, "u")
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("List() after Clear = %+v", list)
	}
	if err := svc.Clear(ctx, "u", a.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("second Clear() err = %v", err)
	}
}

func TestService_Bounded(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < MaxPerUser+5; i++ {
		if _, err := svc.Add(ctx, "u", Input{Title: "t", Message: "m"}); err != nil {
			t.Fatal(err)
		}
	}
	list, _ := svc.List(ctx, "u")
	if len(list) != MaxPerUser {
		t.Errorf("len = %d, want %d", len(list), MaxPerUser)
	}
}
