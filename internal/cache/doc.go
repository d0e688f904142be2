// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package cache provides a bounded, expiring LRU set used to keep hot
// token revocations in memory in front of the key-value store.
//
// Each key carries its own expiry instant instead of a cache-wide TTL, so
// an entry disappears exactly when the token it describes stops being
// valid. When the cache is full the least recently used key is evicted;
// callers must treat a miss as "unknown" and consult the backing store.
package cache
