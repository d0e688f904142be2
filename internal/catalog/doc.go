// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package catalog provides read access to the campus event catalog.

Provider reads events from the store repository and applies the browse
filter (category, date and free-text query). It can delay every read by a
configured latency to mimic a remote backend; the delay honors context
cancellation, so a request whose client disconnects is abandoned without
producing a result.

BreakerProvider wraps any Source with a sony/gobreaker circuit breaker.
Consecutive load failures open the breaker and subsequent calls fail fast
with ErrCatalogUnavailable until the breaker timeout elapses. Nothing is
retried automatically.

Example:

	provider := catalog.NewProvider(repo, cfg.Catalog.SimulatedLatency)
	source := catalog.NewBreakerProvider(provider, &cfg.Catalog)

	events, err := source.List(ctx, models.EventFilter{Category: "workshop"})
	if errors.Is(err, catalog.ErrCatalogUnavailable) {
		// surface "try again later"
	}
*/
package catalog
