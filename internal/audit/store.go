// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package audit

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/campusevents/internal/store"
)

const keyPrefix = "audit:"

// KVStore keeps audit events in a store.KV.
type KVStore struct {
	kv store.KV
}

// NewKVStore creates an audit store on kv.
func NewKVStore(kv store.KV) *KVStore {
	return &KVStore{kv: kv}
}

func eventKey(e *Event) string {
	return fmt.Sprintf("%s%020d:%s", keyPrefix, e.Timestamp.UnixNano(), e.ID)
}

// keyTime extracts the timestamp from a key without decoding the value.
func keyTime(key string) (time.Time, bool) {
	rest := strings.TrimPrefix(key, keyPrefix)
	nanos, _, ok := strings.Cut(rest, ":")
	if !ok {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, n), true
}

// Save writes event.
func (s *KVStore) Save(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.kv.Put(ctx, eventKey(event), data)
}

// Query scans all events and returns the matches newest first.
func (s *KVStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	var out []Event
	err := s.kv.Scan(ctx, keyPrefix, func(key string, value []byte) error {
		if !filter.Since.IsZero() {
			if ts, ok := keyTime(key); ok && ts.Before(filter.Since) {
				return nil
			}
		}
		var e Event
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if matches(&e, &filter) {
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matches(e *Event, f *QueryFilter) bool {
	if f.ActorID != "" && e.ActorID != f.ActorID {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, e.Type) {
		return false
	}
	return true
}

// Delete removes events with a timestamp before olderThan.
func (s *KVStore) Delete(ctx context.Context, olderThan time.Time) (int64, error) {
	var stale []string
	err := s.kv.Scan(ctx, keyPrefix, func(key string, _ []byte) error {
		if ts, ok := keyTime(key); !ok || ts.Before(olderThan) {
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var removed int64
	for _, key := range stale {
		if err := s.kv.Delete(ctx, key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
