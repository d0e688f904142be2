// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"time"

	"github.com/tomtom215/campusevents/internal/audit"
	"github.com/tomtom215/campusevents/internal/models"
)

// LoginRequest starts a session for an existing user. There is no password:
// the campus identity provider is simulated.
type LoginRequest struct {
	UserID string `json:"userId" validate:"required,max=64,excludesall=:/"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	User      *models.UserProfile `json:"user"`
}

// CheckInRequest carries a scanned QR payload.
type CheckInRequest struct {
	Code string `json:"code" validate:"required,max=128"`
}

// ShareProfileRequest toggles networking visibility. A pointer so that an
// explicit false passes the required check.
type ShareProfileRequest struct {
	ShareProfile *bool `json:"shareProfile" validate:"required"`
}

// ProfileResponse is the current user's profile plus inbox state.
type ProfileResponse struct {
	Profile             *models.UserProfile `json:"profile"`
	UnreadNotifications int                 `json:"unreadNotifications"`
}

// QRResponse is the check-in payload encoded in an event's QR code, plus a
// link for sharing the event.
type QRResponse struct {
	EventID  string `json:"eventId"`
	Code     string `json:"code"`
	ShareURL string `json:"shareUrl"`
}

// EventsResponse is a filtered catalog listing.
type EventsResponse struct {
	Events []models.Event     `json:"events"`
	Count  int                `json:"count"`
	Filter models.EventFilter `json:"filter"`
}

// NotificationsResponse is a user's inbox.
type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

// CheckInHistoryResponse lists a user's check-ins.
type CheckInHistoryResponse struct {
	CheckIns []models.CheckIn `json:"checkIns"`
	Points   int              `json:"points"`
}

// HealthResponse reports liveness or readiness.
type HealthResponse struct {
	Status        string            `json:"status"`
	UptimeSeconds int64             `json:"uptimeSeconds"`
	Checks        map[string]string `json:"checks,omitempty"`
}

// CheckInResponse is the result shown after a scan. CheckIn and Balance are
// set only on success.
type CheckInResponse struct {
	models.CheckInResult
	CheckIn *models.CheckIn `json:"checkIn,omitempty"`
	Balance *int            `json:"balance,omitempty"`
}

// ActivityResponse lists the caller's audit trail, newest first.
type ActivityResponse struct {
	Events []audit.Event `json:"events"`
	Count  int           `json:"count"`
}
