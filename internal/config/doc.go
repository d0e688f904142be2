// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package config loads service configuration with Koanf v2.
//
// Sources are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
//     /etc/campusevents/config.yaml
//  3. Environment variables, mapped by envTransformFunc
//
// # Environment Variables
//
// Server:
//   - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
//   - TIME_ZONE: IANA zone used for "today" and event times (default: Local)
//   - ENVIRONMENT: development or production
//
// Store:
//   - STORE_PATH: BadgerDB directory (default: /data/campusevents)
//   - STORE_IN_MEMORY: keep everything in memory (default: false)
//   - STORE_SYNC_WRITES, STORE_SEED, STORE_GC_INTERVAL
//
// Catalog:
//   - CATALOG_LATENCY: simulated provider latency (default: 0)
//   - CATALOG_BREAKER_FAILURES, CATALOG_BREAKER_TIMEOUT
//
// Recommendations:
//   - RECOMMEND_MAX_RESULTS (default: 3)
//
// Security:
//   - JWT_SECRET (required, at least 32 characters)
//   - SESSION_TIMEOUT, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
//     DISABLE_RATE_LIMIT, CORS_ORIGINS (comma-separated)
//
// Logging:
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//
// Config is immutable after Load and safe for concurrent reads.
package config
