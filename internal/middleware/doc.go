// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package middleware provides infrastructure HTTP middleware shared by the API
router.

  - PrometheusMetrics: request counts, latency and in-flight gauge, labelled by
    the chi route pattern so path parameters do not explode cardinality.
  - Compression: gzip for clients that accept it; websocket upgrades pass
    through untouched.

Both are standard func(http.Handler) http.Handler middleware and can be
mounted with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
