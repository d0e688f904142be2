// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package logging wraps a single global zerolog logger for the service.
//
// Initialize it once from main after configuration has been loaded:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// Handlers and services log through the request context so that every line
// carries the request and correlation IDs set by the API middleware:
//
//	logging.Ctx(ctx).Info().Str("event_id", id).Msg("check-in recorded")
//
// Long-lived components take a child logger with a component field:
//
//	log := logging.WithComponent("recommend")
//
// Libraries that require a *slog.Logger (sutureslog) get one backed by the
// same zerolog output via NewSlogLogger.
//
// Always terminate a chain with Msg or Send, otherwise nothing is written.
package logging
