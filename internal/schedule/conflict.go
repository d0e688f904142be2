// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/campusevents/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var (
	// ErrInvalidDate is returned when an event date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid event date")

	// ErrInvalidTime is returned when an event time is not HH:MM or HH:MM-HH:MM.
	ErrInvalidTime = errors.New("invalid event time")

	// ErrEndBeforeStart is returned for a range whose end precedes its start.
	ErrEndBeforeStart = errors.New("event ends before it starts")
)

// Interval is a closed [Start, End] span.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the closed intervals share at least one instant.
func (i Interval) Overlaps(o Interval) bool {
	return !i.Start.After(o.End) && !i.End.Before(o.Start)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// ParseInterval builds the interval for an event in the given location.
// A nil location means UTC. An empty Time places the event at midnight.
func ParseInterval(e *models.Event, loc *time.Location) (Interval, error) {
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(e.Date), loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
	}

	startStr, endStr, hasEnd := strings.Cut(strings.TrimSpace(e.Time), "-")
	start, err := clockOn(day, startStr)
	if err != nil {
		return Interval{}, err
	}
	end := start
	if hasEnd && strings.TrimSpace(endStr) != "" {
		if end, err = clockOn(day, endStr); err != nil {
			return Interval{}, err
		}
	}
	if end.Before(start) {
		return Interval{}, fmt.Errorf("%w: %q", ErrEndBeforeStart, e.Time)
	}

	return Interval{Start: start, End: end}, nil
}

func clockOn(day time.Time, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return day, nil
	}
	c, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}

// Detector checks candidate events against a set of committed events.
type Detector struct {
	loc *time.Location
}

// NewDetector returns a Detector that interprets event dates in loc (UTC if nil).
func NewDetector(loc *time.Location) *Detector {
	if loc == nil {
		loc = time.UTC
	}
	return &Detector{loc: loc}
}

// HasConflict reports whether candidate overlaps any committed event.
// An event never conflicts with itself. Events whose date or time cannot be
// parsed cannot be placed and are treated as non-conflicting.
func (d *Detector) HasConflict(candidate *models.Event, committed []models.Event) bool {
	return len(d.Conflicts(candidate, committed)) > 0
}

// Conflicts returns the committed events that overlap candidate, in input order.
func (d *Detector) Conflicts(candidate *models.Event, committed []models.Event) []models.Event {
	ci, err := ParseInterval(candidate, d.loc)
	if err != nil {
		return nil
	}

	var out []models.Event
	for i := range committed {
		other := &committed[i]
		if other.ID == candidate.ID {
			continue
		}
		oi, err := ParseInterval(other, d.loc)
		if err != nil {
			continue
		}
		if ci.Overlaps(oi) {
			out = append(out, *other)
		}
	}
	return out
}

// HasConflict is a convenience wrapper using a UTC Detector.
func HasConflict(candidate *models.Event, committed []models.Event) bool {
	return NewDetector(time.UTC).HasConflict(candidate, committed)
}
