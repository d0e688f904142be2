// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package websocket pushes per-user notifications to connected browsers.

Each authenticated connection becomes a Client tagged with the session's
user ID. The Hub owns the client set and routes every outbound message to
the clients of the addressed user only. Hub implements notify.Publisher,
so a notification stored for a user is delivered to all of that user's
open tabs as a "notification" message:

	{"type": "notification", "data": {"id": "...", "title": "Points Awarded", ...}}

# Lifecycle

RunWithContext processes registrations, unregistrations and deliveries
until its context is canceled, then closes every client. It is meant to
run under a suture supervisor. Event selection is prioritized: shutdown
first, then client lifecycle, then deliveries, so a client registered
before a delivery is queued always receives it.

# Backpressure

Each client has a 256-message send buffer. A client whose buffer is full
is disconnected rather than allowed to stall the hub. Enqueueing a
delivery never blocks; when the hub's own queue is full the message is
dropped and a warning is logged.

# Keepalive

The write pump sends a ping every 54 seconds and the read pump expects a
pong within 60 seconds. Clients may also send {"type":"ping"} and receive
{"type":"pong"}.
*/
package websocket
