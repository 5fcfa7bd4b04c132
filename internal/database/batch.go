// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"encoding/binary"
	"log/slog"

	"gitlab.com/driptide/driptide/pkg/database/keyvalue"
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
	"gitlab.com/driptide/driptide/protocol"
)

// Batch is a set of pending record changes. Loaded accounts are cached so
// that one address maps to exactly one in-memory record within the batch:
// operations that touch the same account through two paths (say, a removal
// whose reporter is also a stream destination) see a single record.
type Batch struct {
	kv          keyvalue.ChangeSet
	logger      *slog.Logger
	accounts    map[address.Address]*accountEntry
	ledger      *protocol.SystemLedger
	ledgerDirty bool
}

type accountEntry struct {
	record *protocol.AccrualAccount
	dirty  bool
}

func accountKey(addr address.Address) keyvalue.Key {
	return keyvalue.Key("account/" + addr.String())
}

func allowanceKey(owner, spender address.Address) keyvalue.Key {
	return keyvalue.Key("allowance/" + owner.String() + "/" + spender.String())
}

const ledgerKey = keyvalue.Key("system/ledger")

// Account returns the account record for the address, loading it from the
// store on first access. A missing record is returned as a zero-value
// account: accounts spring into existence on first reference.
func (b *Batch) Account(addr address.Address) (*protocol.AccrualAccount, error) {
	if e, ok := b.accounts[addr]; ok {
		return e.record, nil
	}

	acct := &protocol.AccrualAccount{Address: addr}
	data, err := b.kv.Get(accountKey(addr))
	switch {
	case err == nil:
		if err := acct.UnmarshalBinary(data); err != nil {
			return nil, errors.EncodingError.WithFormat("load account %v: %w", addr, err)
		}
	case errors.Is(err, errors.NotFound):
		// New account, all fields zero
	default:
		return nil, errors.UnknownError.WithFormat("load account %v: %w", addr, err)
	}

	b.accounts[addr] = &accountEntry{record: acct}
	return acct, nil
}

// UpdateAccount marks the account's record dirty. The record must have been
// obtained from this batch.
func (b *Batch) UpdateAccount(acct *protocol.AccrualAccount) error {
	e, ok := b.accounts[acct.Address]
	if !ok || e.record != acct {
		return errors.InternalError.WithFormat("account %v was not loaded from this batch", acct.Address)
	}
	e.dirty = true
	return nil
}

// Ledger returns the system ledger, or errors.NotFound if the ledger has
// not been created.
func (b *Batch) Ledger() (*protocol.SystemLedger, error) {
	if b.ledger != nil {
		return b.ledger, nil
	}

	data, err := b.kv.Get(ledgerKey)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	ledger := new(protocol.SystemLedger)
	if err := ledger.UnmarshalBinary(data); err != nil {
		return nil, errors.EncodingError.WithFormat("load ledger: %w", err)
	}
	b.ledger = ledger
	return ledger, nil
}

// PutLedger stores the system ledger.
func (b *Batch) PutLedger(ledger *protocol.SystemLedger) {
	b.ledger = ledger
	b.ledgerDirty = true
}

// Allowance returns the spender's allowance over the owner's balance. A
// missing record is zero.
func (b *Batch) Allowance(owner, spender address.Address) (uint64, error) {
	data, err := b.kv.Get(allowanceKey(owner, spender))
	switch {
	case err == nil:
		v, n := binary.Uvarint(data)
		if n <= 0 {
			return 0, errors.EncodingError.WithFormat("load allowance %v/%v: invalid record", owner, spender)
		}
		return v, nil
	case errors.Is(err, errors.NotFound):
		return 0, nil
	default:
		return 0, errors.UnknownError.WithFormat("load allowance %v/%v: %w", owner, spender, err)
	}
}

// PutAllowance stores the spender's allowance over the owner's balance. A
// zero allowance deletes the record.
func (b *Batch) PutAllowance(owner, spender address.Address, amount uint64) error {
	if amount == 0 {
		return b.kv.Delete(allowanceKey(owner, spender))
	}
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], amount)
	return b.kv.Put(allowanceKey(owner, spender), buf[:n])
}

// Commit marshals every dirty record into the key-value change set and
// commits it as one atomic batch.
func (b *Batch) Commit() error {
	for addr, e := range b.accounts {
		if !e.dirty {
			continue
		}
		data, err := e.record.MarshalBinary()
		if err != nil {
			return errors.EncodingError.WithFormat("store account %v: %w", addr, err)
		}
		if err := b.kv.Put(accountKey(addr), data); err != nil {
			return errors.UnknownError.WithFormat("store account %v: %w", addr, err)
		}
	}

	if b.ledgerDirty {
		data, err := b.ledger.MarshalBinary()
		if err != nil {
			return errors.EncodingError.WithFormat("store ledger: %w", err)
		}
		if err := b.kv.Put(ledgerKey, data); err != nil {
			return errors.UnknownError.WithFormat("store ledger: %w", err)
		}
	}

	return b.kv.Commit()
}

// Discard drops all pending changes.
func (b *Batch) Discard() { b.kv.Discard() }
