// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package audit records security-relevant actions: logins (successful and
rejected), logouts and check-in attempts.

Events are queued by Logger.Log without blocking the request path and
written to the key-value store by Logger.Serve, which runs under the
supervisor's data layer. Serve also deletes events older than the
configured retention.

Keys sort chronologically, so a prefix scan yields events oldest first:

	audit:<unix nanoseconds, zero padded>:<event id>

Users can read their own trail through GET /api/v1/me/activity.
*/
package audit
