// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package auth issues and checks session tokens.
//
// Login is simulated: a known user ID is enough to obtain a token, there is
// no password. A token is an HS256 JWT carrying the user ID and display
// name. The Session extracted from it is passed explicitly into every
// user-scoped operation.
//
// Logout revokes the token's ID (jti) until the token would have expired.
// Revocations live in the key-value store so they survive restarts.
//
// # Usage
//
//	manager, err := auth.NewJWTManager(&cfg.Security)
//	token, session, err := manager.GenerateToken(user.ID, user.Name)
//
//	mw := auth.NewMiddleware(manager, revoker)
//	r.With(mw.RequireSession).Get("/me", handler)
//
//	session, ok := auth.SessionFromContext(r.Context())
package auth
