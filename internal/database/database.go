// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"log/slog"

	"gitlab.com/driptide/driptide/pkg/database/keyvalue"
	"gitlab.com/driptide/driptide/pkg/types/address"
)

// Database is a typed layer over a key-value store.
type Database struct {
	store  keyvalue.Beginner
	logger *slog.Logger
}

func Open(store keyvalue.Beginner, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.Default()
	}
	return &Database{store: store, logger: logger.With("module", "database")}
}

// Begin begins a batch. A writable batch buffers every change until Commit;
// Discard leaves the store untouched.
func (d *Database) Begin(writable bool) *Batch {
	return &Batch{
		kv:       d.store.Begin(writable),
		logger:   d.logger,
		accounts: map[address.Address]*accountEntry{},
	}
}

func (d *Database) Close() error { return d.store.Close() }
