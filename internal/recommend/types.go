// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package recommend

import (
	"time"

	"github.com/tomtom215/campusevents/internal/models"
)

// Reason strings shown above the recommendation list.
const (
	ReasonGeneric   = "Events you might be interested in:"
	ReasonNoMatches = "No upcoming events match your schedule at this time."
)

// Request carries the inputs for one recommendation run.
type Request struct {
	// Catalog is the full event catalog.
	Catalog []models.Event

	// Profile is the requesting user's profile. Only AttendedEvents is read.
	Profile *models.UserProfile

	// Committed holds the events the user has RSVPed to.
	Committed []models.Event

	// RequestID is used for log correlation only.
	RequestID string
}

// Result is the outcome of a recommendation run.
type Result struct {
	Events           []models.Event          `json:"events"`
	Reason           string                  `json:"reason"`
	Underrepresented []models.Category       `json:"underrepresented"`
	Distribution     map[models.Category]int `json:"distribution"`
	GeneratedAt      time.Time               `json:"generated_at"`
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests      int64 `json:"requests"`
	EmptyResults  int64 `json:"empty_results"`
	Candidates    int64 `json:"candidates"`
	ConflictsSeen int64 `json:"conflicts_seen"`
}
