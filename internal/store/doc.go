// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package store persists the service's state in a key-value store.
//
// The KV interface is deliberately small: whole-value Get/Put/Delete, prefix
// Scan, and Update for the few operations that must touch several keys
// atomically. Two implementations exist:
//
//   - BadgerKV: durable storage on BadgerDB (production)
//   - MemoryKV: map-backed storage for tests and ephemeral runs
//
// Repository layers typed accessors over a KV. Values are JSON documents.
// Key layout:
//
//	event:<id>                     models.Event
//	user:<id>                      models.UserProfile
//	checkin:<userID>:<eventID>     models.CheckIn
//	attending:<userID>             map[eventID]bool (RSVP state)
//	notifications:<userID>         []models.Notification, newest first
//
// Absent keys read as empty values, except events and users, whose absence
// is reported as ErrNotFound.
//
// Writes are whole-value replaces; the last writer wins. Only check-in
// recording spans several keys and runs in a single transaction.
package store
