// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package models defines the data types shared across the campus events
// service: catalog events, user profiles, check-in records, notifications,
// and the JSON envelope used by every API response.
//
// Types in this package carry no behaviour beyond small accessors; the
// scheduling, ranking and check-in rules live in their own packages.
package models
