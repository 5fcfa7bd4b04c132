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

// GetFunc reads a value from the underlying store.
type GetFunc func(keyvalue.Key) ([]byte, error)

// CommitFunc writes entries to the underlying store.
type CommitFunc func(map[keyvalue.Key]keyvalue.Entry) error

// DiscardFunc releases any resources held by the underlying store.
type DiscardFunc func()

// ChangeSet buffers changes in a map so gets see values updated with put,
// regardless of the underlying store's transaction behavior. Other drivers
// reuse it on top of their own get and commit functions.
type ChangeSet struct {
	mu      sync.RWMutex
	entries map[keyvalue.Key]keyvalue.Entry
	done    bool
	get     GetFunc
	commit  CommitFunc
	discard DiscardFunc
}

var _ keyvalue.ChangeSet = (*ChangeSet)(nil)

func NewChangeSet(get GetFunc, commit CommitFunc, discard DiscardFunc) *ChangeSet {
	return &ChangeSet{get: get, commit: commit, discard: discard}
}

func (c *ChangeSet) Get(key keyvalue.Key) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		if e.Delete {
			return nil, errors.NotFound.WithFormat("%s not found", key)
		}
		return e.Value, nil
	}
	return c.get(key)
}

func (c *ChangeSet) Put(key keyvalue.Key, value []byte) error {
	if c.commit == nil {
		return errors.NotAllowed.With("change set is not writable")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return errors.InternalError.With("change set is already committed or discarded")
	}
	if c.entries == nil {
		c.entries = map[keyvalue.Key]keyvalue.Entry{}
	}
	c.entries[key] = keyvalue.Entry{Key: key, Value: value}
	return nil
}

func (c *ChangeSet) Delete(key keyvalue.Key) error {
	if c.commit == nil {
		return errors.NotAllowed.With("change set is not writable")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return errors.InternalError.With("change set is already committed or discarded")
	}
	if c.entries == nil {
		c.entries = map[keyvalue.Key]keyvalue.Entry{}
	}
	c.entries[key] = keyvalue.Entry{Key: key, Delete: true}
	return nil
}

// Commit writes all pending entries to the underlying store in one batch.
func (c *ChangeSet) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return errors.InternalError.With("change set is already committed or discarded")
	}
	c.done = true
	defer c.release()

	if c.commit == nil || len(c.entries) == 0 {
		return nil
	}
	return c.commit(c.entries)
}

// Discard drops all pending entries.
func (c *ChangeSet) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	c.release()
}

func (c *ChangeSet) release() {
	c.entries = nil
	if c.discard != nil {
		c.discard()
	}
}
