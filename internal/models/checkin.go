// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package models

import "time"

// CheckIn records that a user redeemed an event code. At most one exists per
// (UserID, EventID); records are never modified after creation.
type CheckIn struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	EventID      string    `json:"eventId"`
	Timestamp    time.Time `json:"timestamp"`
	PointsEarned int       `json:"pointsEarned"`
}

// CheckInResult is the shape surfaced to clients after a scan.
type CheckInResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PointsEarned *int   `json:"pointsEarned,omitempty"`
}
