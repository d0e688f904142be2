// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package main is the entry point for the campus events server.

The server exposes the event catalog, QR check-in, RSVPs, notifications,
recommendations and iCalendar export over a JSON API under /api/v1, plus
Prometheus metrics at /metrics.

# Application Architecture

Long-running components run under a suture v4 supervisor tree:

	RootSupervisor ("campusevents")
	├── DataSupervisor ("data-layer")
	│   ├── store-gc (persistent store only)
	│   ├── revocation-cleanup
	│   └── audit-writer (AUDIT_ENABLED)
	├── MessagingSupervisor ("messaging-layer")
	│   └── websocket-hub
	└── APISupervisor ("api-layer")
	    └── http-server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Store: BadgerDB (or the in-memory store) plus the embedded seed data
 4. Domain services: catalog behind a circuit breaker, check-in, attendance,
    notifications, recommendations, calendar export
 5. Sessions: JWT manager and token revoker
 6. HTTP: chi router with CORS, rate limiting and compression

# Configuration

Environment variables override the config file (config.yaml, or CONFIG_PATH):

	JWT_SECRET=...        # required, at least 32 characters
	HTTP_PORT=8080
	TIME_ZONE=Local       # IANA zone used for event dates
	STORE_PATH=/data/campusevents
	STORE_IN_MEMORY=false
	LOG_LEVEL=info

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to SHUTDOWN_TIMEOUT, the hub closes client
connections, and the store is closed after the tree has stopped.
*/
package main
