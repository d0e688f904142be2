// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/campusevents/internal/models"
)

// Key prefixes
const (
	eventPrefix         = "event:"
	userPrefix          = "user:"
	checkInPrefix       = "checkin:"
	attendingPrefix     = "attending:"
	notificationsPrefix = "notifications:"
)

func eventKey(id string) string { return eventPrefix + id }

func userKey(id string) string { return userPrefix + id }

func checkInKey(userID, eventID string) string { return checkInPrefix + userID + ":" + eventID }

func attendingKey(userID string) string { return attendingPrefix + userID }

func notificationsKey(userID string) string { return notificationsPrefix + userID }

// Repository provides typed access to the KV store.
type Repository struct {
	kv KV
}

// NewRepository wraps kv.
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// KV returns the underlying store.
func (r *Repository) KV() KV {
	return r.kv
}

// Event returns the event with the given ID, or ErrNotFound.
func (r *Repository) Event(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := r.getJSON(ctx, eventKey(id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Events returns every event ordered by date, time and ID.
func (r *Repository) Events(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.kv.Scan(ctx, eventPrefix, func(key string, value []byte) error {
		var e models.Event
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := &events[i], &events[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.ID < b.ID
	})
	return events, nil
}

// PutEvent stores e, replacing any existing event with the same ID.
func (r *Repository) PutEvent(ctx context.Context, e *models.Event) error {
	return r.putJSON(ctx, eventKey(e.ID), e)
}

// User returns the profile with the given ID, or ErrNotFound.
func (r *Repository) User(ctx context.Context, id string) (*models.UserProfile, error) {
	var u models.UserProfile
	if err := r.getJSON(ctx, userKey(id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Users returns every profile in ID order.
func (r *Repository) Users(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	err := r.kv.Scan(ctx, userPrefix, func(key string, value []byte) error {
		var u models.UserProfile
		if err := json.Unmarshal(value, &u); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		users = append(users, u)
		return nil
	})
	return users, err
}

// PutUser stores u.
func (r *Repository) PutUser(ctx context.Context, u *models.UserProfile) error {
	return r.putJSON(ctx, userKey(u.ID), u)
}

// HasCheckedIn reports whether a check-in exists for the pair.
func (r *Repository) HasCheckedIn(ctx context.Context, userID, eventID string) (bool, error) {
	_, err := r.kv.Get(ctx, checkInKey(userID, eventID))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// RecordCheckIn stores c and awards its points to the user in one
// transaction. It returns ErrDuplicate if the pair already checked in and
// ErrNotFound if the user does not exist. The updated profile is returned.
func (r *Repository) RecordCheckIn(ctx context.Context, c *models.CheckIn) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.kv.Update(ctx, func(tx Txn) error {
		profile = models.UserProfile{}
		key := checkInKey(c.UserID, c.EventID)
		if _, err := tx.Get(key); err == nil {
			return ErrDuplicate
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		raw, err := tx.Get(userKey(c.UserID))
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &profile); err != nil {
			return fmt.Errorf("decode user %s: %w", c.UserID, err)
		}
		profile.AwardCheckIn(c.EventID, c.PointsEarned)

		checkIn, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal check-in: %w", err)
		}
		user, err := json.Marshal(&profile)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := tx.Put(key, checkIn); err != nil {
			return err
		}
		return tx.Put(userKey(c.UserID), user)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CheckInsByUser returns a user's check-ins, oldest first.
func (r *Repository) CheckInsByUser(ctx context.Context, userID string) ([]models.CheckIn, error) {
	out, err := r.scanCheckIns(ctx, checkInPrefix+userID+":", func(*models.CheckIn) bool { return true })
	if err != nil {
		return nil, err
	}
	sortCheckIns(out)
	return out, nil
}

// CheckInsByEvent returns every check-in for an event, oldest first.
func (r *Repository) CheckInsByEvent(ctx context.Context, eventID string) ([]models.CheckIn, error) {
	out, err := r.scanCheckIns(ctx, checkInPrefix, func(c *models.CheckIn) bool { return c.EventID == eventID })
	if err != nil {
		return nil, err
	}
	sortCheckIns(out)
	return out, nil
}

// Attending returns the RSVP map for a user. Missing state is an empty map.
func (r *Repository) Attending(ctx context.Context, userID string) (map[string]bool, error) {
	m := make(map[string]bool)
	if err := r.getJSON(ctx, attendingKey(userID), &m); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return m, nil
}

// UpdateAttending applies fn to the user's RSVP map and stores the result.
func (r *Repository) UpdateAttending(ctx context.Context, userID string, fn func(map[string]bool) error) (map[string]bool, error) {
	var m map[string]bool
	err := r.kv.Update(ctx, func(tx Txn) error {
		m = make(map[string]bool)
		if err := txGetJSON(tx, attendingKey(userID), &m); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
		return txPutJSON(tx, attendingKey(userID), m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Notifications returns a user's notifications, newest first.
func (r *Repository) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var list []models.Notification
	if err := r.getJSON(ctx, notificationsKey(userID), &list); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return list, nil
}

// UpdateNotifications replaces a user's notification list with fn's result.
func (r *Repository) UpdateNotifications(ctx context.Context, userID string, fn func([]models.Notification) ([]models.Notification, error)) ([]models.Notification, error) {
	var out []models.Notification
	err := r.kv.Update(ctx, func(tx Txn) error {
		var list []models.Notification
		if err := txGetJSON(tx, notificationsKey(userID), &list); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		next, err := fn(list)
		if err != nil {
			return err
		}
		out = next
		return txPutJSON(tx, notificationsKey(userID), next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// putIfAbsent stores v at key only if the key does not exist yet. It
// reports whether a write happened.
func (r *Repository) putIfAbsent(ctx context.Context, key string, v any) (bool, error) {
	written := false
	err := r.kv.Update(ctx, func(tx Txn) error {
		written = false
		if _, err := tx.Get(key); err == nil {
			return nil
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		written = true
		return txPutJSON(tx, key, v)
	})
	return written, err
}

func (r *Repository) scanCheckIns(ctx context.Context, prefix string, keep func(*models.CheckIn) bool) ([]models.CheckIn, error) {
	var out []models.CheckIn
	err := r.kv.Scan(ctx, prefix, func(key string, value []byte) error {
		var c models.CheckIn
		if err := json.Unmarshal(value, &c); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if keep(&c) {
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

func sortCheckIns(list []models.CheckIn) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
}

func (r *Repository) getJSON(ctx context.Context, key string, dst any) error {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.kv.Put(ctx, key, data)
}

func txGetJSON(tx Txn, key string, dst any) error {
	raw, err := tx.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func txPutJSON(tx Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return tx.Put(key, data)
}
