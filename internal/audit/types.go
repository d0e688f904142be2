// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package audit

import (
	"context"
	"time"
)

// EventType categorizes an audit event.
type EventType string

const (
	EventTypeLoginSuccess EventType = "auth.login.success"
	EventTypeLoginFailure EventType = "auth.login.failure"
	EventTypeLogout       EventType = "auth.logout"
	EventTypeCheckIn      EventType = "checkin.attempt"
)

// Outcome indicates whether the audited action succeeded.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one audit record.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Outcome   Outcome   `json:"outcome"`

	// ActorID is the user the action was performed as. For rejected
	// logins it is the user ID that was attempted.
	ActorID string `json:"actorId"`

	// TargetID is the event a check-in was attempted for, if known.
	TargetID string `json:"targetId,omitempty"`

	// Reason is a machine-readable code for failures, e.g. ALREADY_CHECKED_IN.
	Reason string `json:"reason,omitempty"`

	Source    Source `json:"source"`
	RequestID string `json:"requestId,omitempty"`
}

// Source describes where a request came from.
type Source struct {
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// QueryFilter selects events. Zero values match everything.
type QueryFilter struct {
	ActorID string
	Types   []EventType
	Since   time.Time

	// Limit caps the result; the newest events are kept.
	Limit int
}

// Store persists audit events.
type Store interface {
	Save(ctx context.Context, event *Event) error

	// Query returns matching events newest first.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Delete removes events older than olderThan and returns how many.
	Delete(ctx context.Context, olderThan time.Time) (int64, error)
}
