// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package schedule places catalog events on a timeline and detects
// overlaps between them.
//
// An event's interval is built from its calendar date plus its time range.
// Both endpoints are inclusive, so two events that merely touch (one ends at
// 16:00, the next starts at 16:00) still conflict. An event with no end time
// occupies a single instant.
package schedule
