// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"

	"gitlab.com/driptide/driptide/pkg/database/keyvalue"
	"gitlab.com/driptide/driptide/pkg/errors"
)

// Database is an in-memory key-value store, for tests and ephemeral nodes.
type Database struct {
	mu      sync.RWMutex
	entries map[keyvalue.Key][]byte
}

var _ keyvalue.Beginner = (*Database)(nil)

func New() *Database {
	return &Database{entries: map[keyvalue.Key][]byte{}}
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	var commit CommitFunc
	if writable {
		commit = d.put
	}
	return NewChangeSet(d.get, commit, nil)
}

func (d *Database) Close() error { return nil }

func (d *Database) get(key keyvalue.Key) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	value, ok := d.entries[key]
	if !ok {
		return nil, errors.NotFound.WithFormat("%s not found", key)
	}
	// Copy so the caller cannot mutate the stored value
	return append([]byte(nil), value...), nil
}

func (d *Database) put(entries map[keyvalue.Key]keyvalue.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range entries {
		if e.Delete {
			delete(d.entries, e.Key)
		} else {
			d.entries[e.Key] = e.Value
		}
	}
	return nil
}
