// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package calendar renders a user's RSVPed events as an iCalendar feed.
// Each event becomes one VEVENT whose DTSTART and DTEND come from the same
// interval parser the conflict detector uses.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/schedule"
)

// ContentType is the MIME type of an exported feed.
const ContentType = "text/calendar; charset=utf-8"

const productID = "-//tomtom215//Campus Events//EN"

// ErrNoEvents is returned when there is nothing to export.
var ErrNoEvents = errors.New("no events to export")

// Exporter builds iCalendar documents.
type Exporter struct {
	loc *time.Location
	now func() time.Time
}

// NewExporter creates an exporter that interprets event times in loc.
// A nil loc means UTC.
func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{loc: loc, now: time.Now}
}

// Build returns a calendar with one VEVENT per event. Events whose date or
// time cannot be parsed are skipped.
func (x *Exporter) Build(events []models.Event) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	stamp := x.now().UTC()
	for i := range events {
		e := &events[i]
		iv, err := schedule.ParseInterval(e, x.loc)
		if err != nil {
			logging.Warn().Err(err).Str("event_id", e.ID).Msg("skipping event with unparseable schedule")
			continue
		}

		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, e.ID+"@campusevents")
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		ev.Props.SetDateTime(ical.PropDateTimeStart, iv.Start.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeEnd, iv.End.UTC())
		ev.Props.SetText(ical.PropSummary, e.Title)
		if e.Description != "" {
			ev.Props.SetText(ical.PropDescription, e.Description)
		}
		if e.Location != "" {
			ev.Props.SetText(ical.PropLocation, e.Location)
		}
		if e.Category != "" {
			ev.Props.SetText(ical.PropCategories, e.Category.Title())
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	if len(cal.Children) == 0 {
		return nil, ErrNoEvents
	}
	return cal, nil
}

// Write encodes the events as an iCalendar document to w.
func (x *Exporter) Write(w io.Writer, events []models.Event) error {
	cal, err := x.Build(events)
	if err != nil {
		return err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
