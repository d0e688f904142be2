// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/metrics"
)

// BadgerOptions configures a BadgerKV.
type BadgerOptions struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory. Nothing survives Close.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// GCDiscardRatio is passed to RunValueLogGC.
	GCDiscardRatio float64

	// GCInterval is the period of the Serve loop. Defaults to 5 minutes.
	GCInterval time.Duration
}

// BadgerKV implements KV on BadgerDB.
type BadgerKV struct {
	db     *badger.DB
	opts   BadgerOptions
	closed atomic.Bool

	updateMu sync.Mutex
}

// OpenBadger opens (or creates) a BadgerDB database.
func OpenBadger(opts BadgerOptions) (*BadgerKV, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("store path is required")
		}
		bopts = badger.DefaultOptions(opts.Path)
		bopts.SyncWrites = opts.SyncWrites
	}
	// Reduce logging verbosity
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	if opts.GCDiscardRatio <= 0 || opts.GCDiscardRatio >= 1 {
		opts.GCDiscardRatio = 0.5
	}
	if opts.GCInterval <= 0 {
		opts.GCInterval = 5 * time.Minute
	}

	logging.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Bool("sync_writes", opts.SyncWrites).
		Msg("store opened")

	return &BadgerKV{db: db, opts: opts}, nil
}

// Get returns a copy of the value stored at key.
func (s *BadgerKV) Get(ctx context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = badgerGet(txn, key)
		return err
	})
	return out, err
}

// Put replaces the value at key.
func (s *BadgerKV) Put(ctx context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

// Delete removes key.
func (s *BadgerKV) Delete(ctx context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

// Scan iterates keys with prefix in lexical order.
func (s *BadgerKV) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", item.Key(), err)
			}
			if err := fn(string(item.KeyCopy(nil)), val); err != nil {
				return err
			}
		}
		return nil
	})
}

// maxUpdateAttempts bounds retries of an Update that lost an optimistic
// conflict to a concurrent write.
const maxUpdateAttempts = 16

// Update runs fn inside a badger read-write transaction. Updates within the
// process are serialized; a conflict with a concurrent Put or Delete re-runs
// fn against the newer state, up to maxUpdateAttempts times.
func (s *BadgerKV) Update(ctx context.Context, fn func(tx Txn) error) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	var err error
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			return fn(badgerTxn{txn: txn})
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		metrics.StoreTxnConflicts.Inc()
		logging.Debug().Int("attempt", attempt).Msg("store transaction conflict, retrying")
	}
	return fmt.Errorf("update after %d attempts: %w", maxUpdateAttempts, err)
}

// RunGC runs value log garbage collection until nothing is left to reclaim.
// Returns the number of files rewritten.
func (s *BadgerKV) RunGC() int {
	if s.closed.Load() || s.opts.InMemory {
		return 0
	}
	n := 0
	for {
		if err := s.db.RunValueLogGC(s.opts.GCDiscardRatio); err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				logging.Warn().Err(err).Msg("value log GC failed")
			}
			return n
		}
		n++
	}
}

// Serve runs periodic value log GC until ctx is canceled. It satisfies
// suture.Service so the GC loop can run under the supervisor tree.
func (s *BadgerKV) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.GCInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.RunGC(); n > 0 {
				logging.Debug().Int("files", n).Msg("value log GC reclaimed space")
			}
		}
	}
}

// String names the service in supervisor logs.
func (s *BadgerKV) String() string {
	return "store-gc"
}

// Close closes the database. Subsequent calls are no-ops.
func (s *BadgerKV) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

type badgerTxn struct {
	txn *badger.Txn
}

func (t badgerTxn) Get(key string) ([]byte, error) {
	return badgerGet(t.txn, key)
}

func (t badgerTxn) Put(key string, value []byte) error {
	return t.txn.Set([]byte(key), value)
}

func (t badgerTxn) Delete(key string) error {
	err := t.txn.Delete([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

func badgerGet(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return item.ValueCopy(nil)
}
