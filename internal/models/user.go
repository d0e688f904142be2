// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package models

import "slices"

// UserProfile is a student account as seen by the service.
type UserProfile struct {
	ID                  string     `json:"id" validate:"required"`
	Name                string     `json:"name" validate:"required"`
	Email               string     `json:"email,omitempty" validate:"omitempty,email"`
	Major               string     `json:"major,omitempty"`
	Points              int        `json:"points" validate:"min=0"`
	AttendedEvents      []string   `json:"attendedEvents"`
	Badges              []string   `json:"badges"`
	ShareProfile        bool       `json:"shareProfile"`
	PreferredCategories []Category `json:"preferredCategories,omitempty"`
}

// HasAttended reports whether eventID is in the attended set.
func (u *UserProfile) HasAttended(eventID string) bool {
	return slices.Contains(u.AttendedEvents, eventID)
}

// AwardCheckIn adds points and records the event as attended. The attended
// set stays unique.
func (u *UserProfile) AwardCheckIn(eventID string, points int) {
	u.Points += points
	if !u.HasAttended(eventID) {
		u.AttendedEvents = append(u.AttendedEvents, eventID)
	}
}

// NetworkingUser is the public slice of a profile shown to other attendees.
type NetworkingUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Major string `json:"major,omitempty"`
}
