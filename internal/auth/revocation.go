// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/campusevents/internal/cache"
	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/store"
)

const revokedKeyPrefix = "revoked:"

// RevokedToken is a stored revocation record.
type RevokedToken struct {
	TokenID   string    `json:"jti"`
	UserID    string    `json:"user_id"`
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// recentRevocations bounds the in-memory set of revoked token IDs.
const recentRevocations = 4096

// Revoker tracks logged-out token IDs in the key-value store. Entries are
// kept until the token they revoke would have expired anyway. Recent
// revocations are also held in an LRU so replayed tokens are rejected
// without a store read.
type Revoker struct {
	kv       store.KV
	recent   *cache.LRUCache
	interval time.Duration
	now      func() time.Time
}

// NewRevoker creates a revocation list on kv. interval controls how often
// Serve purges expired entries.
func NewRevoker(kv store.KV, interval time.Duration) *Revoker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Revoker{
		kv:       kv,
		recent:   cache.NewLRUCache(recentRevocations),
		interval: interval,
		now:      time.Now,
	}
}

// setClock replaces the time source of the revoker and its cache.
func (r *Revoker) setClock(now func() time.Time) {
	r.now = now
	r.recent.SetClock(now)
}

// Revoke records the session's token as logged out.
func (r *Revoker) Revoke(ctx context.Context, s *Session) error {
	if s.TokenID == "" {
		return errors.New("session has no token id")
	}
	data, err := json.Marshal(&RevokedToken{
		TokenID:   s.TokenID,
		UserID:    s.UserID,
		RevokedAt: r.now().UTC(),
		ExpiresAt: s.ExpiresAt,
	})
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, revokedKeyPrefix+s.TokenID, data); err != nil {
		return err
	}
	r.recent.Add(s.TokenID, s.ExpiresAt)
	return nil
}

// IsRevoked reports whether tokenID was revoked and has not yet expired.
func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if _, ok := r.recent.Get(tokenID); ok {
		return true, nil
	}
	raw, err := r.kv.Get(ctx, revokedKeyPrefix+tokenID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var entry RevokedToken
	if err := json.Unmarshal(raw, &entry); err != nil {
		return false, err
	}
	return r.now().Before(entry.ExpiresAt), nil
}

// CleanupExpired removes revocations whose tokens have expired.
func (r *Revoker) CleanupExpired(ctx context.Context) (int, error) {
	r.recent.CleanupExpired()
	now := r.now()
	var expired []string
	err := r.kv.Scan(ctx, revokedKeyPrefix, func(key string, value []byte) error {
		var entry RevokedToken
		if err := json.Unmarshal(value, &entry); err != nil || !now.Before(entry.ExpiresAt) {
			expired = append(expired, key)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, key := range expired {
		if err := r.kv.Delete(ctx, key); err != nil {
			logging.Warn().Err(err).Str("token_id", strings.TrimPrefix(key, revokedKeyPrefix)).Msg("failed to remove expired revocation")
			continue
		}
		removed++
	}
	return removed, nil
}

// Serve purges expired revocations periodically until ctx is canceled.
func (r *Revoker) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := r.CleanupExpired(ctx)
			if err != nil {
				logging.Warn().Err(err).Msg("revocation cleanup failed")
				continue
			}
			if n > 0 {
				logging.Debug().Int("removed", n).Msg("expired revocations removed")
			}
		}
	}
}

// String names the service in supervisor logs.
func (r *Revoker) String() string {
	return "revocation-cleanup"
}
