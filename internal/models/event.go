// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package models

import "strings"

// Category is an enumerated event tag. The catalog decides which tags
// exist; the constants below are the ones the points table knows about.
type Category string

const (
	CategoryWorkshop Category = "workshop"
	CategorySocial   Category = "social"
	CategoryAcademic Category = "academic"
	CategorySports   Category = "sports"
	CategoryCareer   Category = "career"
)

// Title returns the category with its first letter upper-cased ("workshop" -> "Workshop").
func (c Category) Title() string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Event is a single catalog entry.
//
// Date is a calendar day (YYYY-MM-DD). Time is either a start time ("14:00")
// or a same-day range ("14:00-16:00"); a missing end means a zero-length
// instant at the start.
type Event struct {
	ID          string       `json:"id" validate:"required"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Date        string       `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string       `json:"time" validate:"required,timerange"`
	Location    string       `json:"location"`
	Organizer   string       `json:"organizer"`
	Category    Category     `json:"category" validate:"required,slug"`
	Image       string       `json:"image,omitempty"`
	Attendees   int          `json:"attendees" validate:"min=0"`
	MapPosition *MapPosition `json:"mapPosition,omitempty"`

	// Approved gates check-in only. nil means approved.
	Approved *bool `json:"approved,omitempty"`
}

// MapPosition is an [x, y, z] coordinate on the 3D campus map.
type MapPosition [3]float64

// IsApproved reports whether check-in is allowed for the event.
func (e *Event) IsApproved() bool {
	return e.Approved == nil || *e.Approved
}

// EventFilter narrows a catalog listing. Empty fields match everything;
// Category "all" also matches everything.
type EventFilter struct {
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
	Query    string `json:"query,omitempty"`
}

// Matches applies the filter to a single event. Query is a case-insensitive
// substring match over title, description and organizer.
func (f EventFilter) Matches(e *Event) bool {
	if f.Category != "" && f.Category != "all" && string(e.Category) != f.Category {
		return false
	}
	if f.Date != "" && e.Date != f.Date {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) &&
			!strings.Contains(strings.ToLower(e.Organizer), q) {
			return false
		}
	}
	return true
}
