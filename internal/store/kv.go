// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key or entity does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when a write would violate a uniqueness rule.
	ErrDuplicate = errors.New("store: duplicate")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: closed")
)

// KV is a byte-oriented key-value store.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Scan calls fn for every key with the given prefix, in key order.
	// Returning an error from fn stops the scan and is returned.
	Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error

	// Update runs fn in a read-write transaction. The transaction commits
	// only if fn returns nil. fn may run more than once when the commit
	// conflicts with a concurrent write, so it must not keep state across
	// calls.
	Update(ctx context.Context, fn func(tx Txn) error) error

	// Close releases the store's resources.
	Close() error
}

// Txn is the view of the store inside Update.
type Txn interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}
