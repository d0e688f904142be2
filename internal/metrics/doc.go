// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package metrics provides Prometheus instrumentation for the campus events service.

All collectors are registered on the default registry through promauto and are
exposed by the API server at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Requests by method, route pattern, and status code (counter)
  - api_request_duration_seconds: Request latency by method and route (histogram)
  - api_active_requests: Requests currently in flight (gauge)
  - api_rate_limit_hits_total: Rate limiter rejections (counter)

Authentication Metrics:
  - auth_failures_total: Rejected credentials by reason (counter)
  - auth_sessions_issued_total: Sessions issued at login (counter)

Domain Metrics:
  - checkins_total: Check-in attempts by outcome (counter)
  - checkin_points_awarded_total: Points granted by check-ins (counter)
  - recommendations_served_total: Recommendation responses (counter)
  - recommendation_result_size: Events per recommendation (histogram)
  - rsvp_toggles_total: RSVP changes by action (counter)
  - notifications_created_total: Notifications stored (counter)

Catalog Metrics:
  - catalog_load_duration_seconds: Time to load the event catalog (histogram)
  - catalog_errors_total: Failed catalog loads (counter)
  - circuit_breaker_state: Breaker state, 0=closed 1=half-open 2=open (gauge)
  - circuit_breaker_requests_total: Breaker calls by result (counter)
  - circuit_breaker_state_transitions_total: Breaker transitions (counter)

WebSocket Metrics:
  - websocket_connections: Open WebSocket connections (gauge)
  - websocket_messages_sent_total: Messages pushed to clients (counter)
  - websocket_errors_total: WebSocket errors by type (counter)

# Usage

Callers use the Record* helpers rather than touching collectors directly:

	start := time.Now()
	metrics.TrackActiveRequest(true)
	defer metrics.TrackActiveRequest(false)
	// ... handle request ...
	metrics.RecordAPIRequest(r.Method, "/api/recommendations", "200", time.Since(start))

# Thread Safety

Prometheus collectors are safe for concurrent use.
*/
package metrics
