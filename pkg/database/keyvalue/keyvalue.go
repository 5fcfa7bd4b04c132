// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package keyvalue

// Key identifies a record within a store.
type Key string

// Entry is a pending write within a change set.
type Entry struct {
	Key    Key
	Value  []byte
	Delete bool
}

// Store reads and writes key-value pairs.
type Store interface {
	// Get returns the value, or an errors.NotFound error.
	Get(Key) ([]byte, error)
	Put(Key, []byte) error
	Delete(Key) error
}

// ChangeSet is a set of pending changes. Puts and deletes are buffered until
// Commit and are visible to the change set's own gets. Either Commit or
// Discard must be called; both are safe to call after the other.
type ChangeSet interface {
	Store
	Commit() error
	Discard()
}

// Beginner is a database that can begin change sets.
type Beginner interface {
	Begin(writable bool) ChangeSet
	Close() error
}
