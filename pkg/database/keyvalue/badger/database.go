// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"gitlab.com/driptide/driptide/pkg/database/keyvalue"
	"gitlab.com/driptide/driptide/pkg/database/keyvalue/memory"
	"gitlab.com/driptide/driptide/pkg/errors"
)

// Database is a Badger-backed key-value store.
type Database struct {
	badger *badger.DB
	ready  bool
	mu     sync.RWMutex
}

var _ keyvalue.Beginner = (*Database)(nil)

func New(filepath string) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(slogger{})

	d := new(Database)
	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: %w", err)
	}
	d.ready = true
	mDbOpen.Inc()

	// Run GC every hour
	go d.gc()

	return d, nil
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	// Use a read-only transaction for reading
	rd := d.badger.NewTransaction(false)
	mTxnOpen.Inc()

	get := func(key keyvalue.Key) ([]byte, error) {
		item, err := rd.Get([]byte(key))
		switch {
		case err == nil:
			// Ok
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil, errors.NotFound.WithFormat("%s not found", key)
		default:
			return nil, errors.UnknownError.WithFormat("get %s: %w", key, err)
		}

		v, err := item.ValueCopy(nil)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("get %s: %w", key, err)
		}
		return v, nil
	}

	// Commit via a write batch to work around Badger's transaction size
	// limits
	var commit memory.CommitFunc
	if writable {
		commit = func(entries map[keyvalue.Key]keyvalue.Entry) error {
			l, err := d.lock(false)
			if err != nil {
				return err
			}
			defer l.Unlock()

			start := time.Now()
			defer func() { mCommitDuration.Set(time.Since(start).Seconds()) }()

			wr := d.badger.NewWriteBatch()
			defer wr.Cancel()

			for _, e := range entries {
				if e.Delete {
					err = wr.Delete([]byte(e.Key))
				} else {
					err = wr.Set([]byte(e.Key), e.Value)
				}
				if err != nil {
					return errors.UnknownError.WithFormat("write %s: %w", e.Key, err)
				}
			}

			return wr.Flush()
		}
	}

	discard := func() {
		rd.Discard()
		mTxnOpen.Dec()
	}

	return memory.NewChangeSet(get, commit, discard)
}

// Close closes the underlying database.
func (d *Database) Close() error {
	l, err := d.lock(true)
	if err != nil {
		return err
	}
	defer l.Unlock()

	d.ready = false
	mDbOpen.Dec()
	return d.badger.Close()
}

// lock acquires the ready-state lock, failing if the database has been
// closed. Commits take a read lock so they can run concurrently with each
// other; Close takes the write lock so it waits for in-flight commits.
func (d *Database) lock(exclusive bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !exclusive {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, errors.InternalError.With("database is closed")
	}
	return l, nil
}

func (d *Database) gc() {
	for {
		// GC every hour
		time.Sleep(time.Hour)

		// Still open?
		l, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		start := time.Now()
		mGcRun.Inc()
		err = d.badger.RunValueLogGC(0.5)
		mGcDuration.Set(time.Since(start).Seconds())
		if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			slogger{}.Errorf("Badger GC failed: %v", err)
		}

		l.Unlock()
	}
}
