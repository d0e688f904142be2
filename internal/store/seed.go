// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package store

import (
	"context"
	"embed"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/schedule"
	"github.com/tomtom215/campusevents/internal/validation"
)

//go:embed seed/events.json seed/users.json
var seedFS embed.FS

// SeedStats reports how many records a Seed call wrote.
type SeedStats struct {
	Events int
	Users  int
}

// SeedEvents decodes and validates the embedded event catalog.
func SeedEvents() ([]models.Event, error) {
	var events []models.Event
	if err := decodeSeed("seed/events.json", &events); err != nil {
		return nil, err
	}
	for i := range events {
		if err := ValidateEvent(&events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// SeedUsers decodes and validates the embedded user profiles.
func SeedUsers() ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := decodeSeed("seed/users.json", &users); err != nil {
		return nil, err
	}
	for i := range users {
		if verr := validation.ValidateStruct(&users[i]); verr != nil {
			return nil, fmt.Errorf("seed user %s: %w", users[i].ID, verr)
		}
	}
	return users, nil
}

// ValidateEvent checks field constraints and that the time range parses
// with start <= end.
func ValidateEvent(e *models.Event) error {
	if verr := validation.ValidateStruct(e); verr != nil {
		return fmt.Errorf("event %s: %w", e.ID, verr)
	}
	if _, err := schedule.ParseInterval(e, nil); err != nil {
		return fmt.Errorf("event %s: %w", e.ID, err)
	}
	return nil
}

// Seed writes the embedded catalog and users into the store. Records that
// already exist are left untouched, so user progress survives restarts.
func (r *Repository) Seed(ctx context.Context) (SeedStats, error) {
	var stats SeedStats

	events, err := SeedEvents()
	if err != nil {
		return stats, err
	}
	users, err := SeedUsers()
	if err != nil {
		return stats, err
	}

	for i := range events {
		ok, err := r.putIfAbsent(ctx, eventKey(events[i].ID), &events[i])
		if err != nil {
			return stats, fmt.Errorf("seed event %s: %w", events[i].ID, err)
		}
		if ok {
			stats.Events++
		}
	}
	for i := range users {
		ok, err := r.putIfAbsent(ctx, userKey(users[i].ID), &users[i])
		if err != nil {
			return stats, fmt.Errorf("seed user %s: %w", users[i].ID, err)
		}
		if ok {
			stats.Users++
		}
	}

	logging.Info().
		Int("events", stats.Events).
		Int("users", stats.Users).
		Msg("store seeded")
	return stats, nil
}

func decodeSeed(name string, dst any) error {
	raw, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
