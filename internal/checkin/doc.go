// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package checkin redeems per-event QR codes for points.

A code has the form "event-<id>". Processor.CheckIn parses the code, looks
the event up in the catalog, rejects events whose approval flag is false,
and refuses a second check-in for the same user and event. On success the
check-in record and the profile update are written in one store
transaction, so either both are visible or neither is. A "Points Awarded"
notification follows.

Points depend on the event category:

	workshop  15
	academic  20
	career    15
	social    10
	sports    10
	other     10

ToResult turns an outcome or error into the user-facing result body.
*/
package checkin
