// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package api exposes the campus events service over HTTP.

Routing uses go-chi/chi v5 with go-chi/cors and go-chi/httprate. Every
response uses the models.APIResponse envelope:

	{
	  "status": "success" | "error",
	  "data": ...,
	  "metadata": {"timestamp": "...", "request_id": "..."},
	  "error": {"code": "...", "message": "..."}
	}

Endpoints (all under /api/v1):

	GET    /health/live                 process is up
	GET    /health/ready                store reachable, catalog breaker closed
	POST   /auth/login                  {userId} -> {token, expiresAt, user}
	POST   /auth/logout                 revoke the presented token
	GET    /events?category=&date=&q=   filtered catalog
	GET    /events/{id}
	GET    /events/{id}/qr              {code} check-in payload
	GET    /events/{id}/attendees       networking list
	GET    /categories
	POST   /events/{id}/rsvp            toggle RSVP (session)
	POST   /checkins                    {code} (session)
	GET    /me                          profile (session)
	PUT    /me/share-profile            {shareProfile} (session)
	GET    /me/rsvps                    committed events (session)
	GET    /me/calendar.ics             iCalendar export (session)
	GET    /me/recommendations          (session)
	GET    /me/checkins                 check-in history (session)
	GET    /me/activity                 own audit trail (session)
	GET    /me/notifications            (session)
	POST   /me/notifications/read-all   (session)
	POST   /me/notifications/{id}/read  (session)
	DELETE /me/notifications/{id}       (session)
	GET    /me/ws                       websocket notification push (session)

Prometheus metrics are served at /metrics.

Session-required endpoints accept a bearer token issued by /auth/login. The
websocket endpoint also accepts the token in the "token" query parameter.
*/
package api
