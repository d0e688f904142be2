// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package attendance tracks which events a user has RSVPed for. The
// committed set it produces is the conflict baseline for recommendations
// and the source of the calendar export.
package attendance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/campusevents/internal/catalog"
	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/store"
)

// Status is the RSVP state of one event for one user.
type Status struct {
	EventID   string `json:"eventId"`
	Attending bool   `json:"attending"`

	// Attendees is the event's headcount including this user's RSVP.
	Attendees int `json:"attendees"`
}

// Service manages RSVPs.
type Service struct {
	repo    *store.Repository
	catalog catalog.Source
	logger  zerolog.Logger
}

// NewService creates an attendance service.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func NewService(repo *store.Repository, source catalog.Source, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: source,
		logger:  logger.With().Str("component", "attendance").Logger(),
	}
}

// Toggle flips the user's RSVP for eventID and returns the new state.
// Unknown events fail with catalog.ErrEventNotFound.
func (s *Service) Toggle(ctx context.Context, userID, eventID string) (*Status, error) {
	event, err := s.catalog.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var attending bool
	_, err = s.repo.UpdateAttending(ctx, userID, func(m map[string]bool) error {
		attending = !m[eventID]
		if attending {
			m[eventID] = true
		} else {
			delete(m, eventID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update rsvp: %w", err)
	}

	action := "cancel"
	if attending {
		action = "attend"
	}
	metrics.RSVPToggles.WithLabelValues(action).Inc()
	s.logger.Debug().Str("user_id", userID).Str("event_id", eventID).Bool("attending", attending).Msg("rsvp toggled")

	return status(event, attending), nil
}

// Status returns the user's RSVP state for eventID.
func (s *Service) Status(ctx context.Context, userID, eventID string) (*Status, error) {
	event, err := s.catalog.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.Attending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return status(event, m[eventID]), nil
}

// Committed returns the events the user has RSVPed for, in date order.
// RSVPs for events no longer in the catalog are ignored.
func (s *Service) Committed(ctx context.Context, userID string) ([]models.Event, error) {
	m, err := s.repo.Attending(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.Event{}
	if len(m) == 0 {
		return out, nil
	}

	all, err := s.catalog.List(ctx, models.EventFilter{})
	if err != nil {
		return nil, err
	}
	for i := range all {
		if m[all[i].ID] {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func status(e *models.Event, attending bool) *Status {
	n := e.Attendees
	if attending {
		n++
	}
	return &Status{EventID: e.ID, Attending: attending, Attendees: n}
}
