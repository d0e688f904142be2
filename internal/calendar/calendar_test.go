// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package calendar

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tomtom215/campusevents/internal/models"
)

func testEvents() []models.Event {
	return []models.Event{
		{
			ID:          "1",
			Title:       "Introduction to Machine Learning Workshop",
			Description: "Hands-on session",
			Date:        "2023-11-15",
			Time:        "14:00-16:00",
			Location:    "Building B",
			Category:    models.CategoryWorkshop,
		},
		{
			ID:       "2",
			Title:    "Spring Break Beach Party",
			Date:     "2023-11-18",
			Time:     "19:00-23:00",
			Category: models.CategorySocial,
		},
	}
}

func TestExporter_Write(t *testing.T) {
	x := NewExporter(time.UTC)
	x.now = func() time.Time { return time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	if err := x.Write(&buf, testEvents()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "BEGIN:VCALENDAR") {
		t.Fatalf("output is not a calendar:\n%s", buf.String())
	}

	cal, err := ical.NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("VEVENT count = %d, want 2", len(events))
	}

	start, err := events[0].DateTimeStart(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	end, err := events[0].DateTimeEnd(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	wantStart := time.Date(2023, 11, 15, 14, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantStart.Add(2*time.Hour)) {
		t.Errorf("interval = %v - %v", start, end)
	}

	summary, err := events[1].Props.Text(ical.PropSummary)
	if err != nil {
		t.Fatal(err)
	}
	if summary != "Spring Break Beach Party" {
		t.Errorf("SUMMARY = %q", summary)
	}
}

func TestExporter_LocalTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	cal, err := NewExporter(loc).Build(testEvents()[:1])
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	start, err := cal.Events()[0].DateTimeStart(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2023, 11, 15, 19, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("DTSTART = %v, want %v", start, want)
	}
}

func TestExporter_SkipsUnparseable(t *testing.T) {
	events := append(testEvents(), models.Event{ID: "bad", Title: "Broken", Date: "soon", Time: "later"})
	cal, err := NewExporter(nil).Build(events)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if n := len(cal.Events()); n != 2 {
		t.Errorf("VEVENT count = %d, want 2", n)
	}
}

func TestExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExporter(nil).Write(&buf, nil); !errors.Is(err, ErrNoEvents) {
		t.Errorf("Write() error = %v, want ErrNoEvents", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an empty export")
	}
}
