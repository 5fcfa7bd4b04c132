// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"context"
	"log/slog"

	"gitlab.com/driptide/driptide/internal/database"
	"gitlab.com/driptide/driptide/internal/registry"
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
	"gitlab.com/driptide/driptide/protocol"
)

// StateManager carries the state of one operation: the batch, the system
// ledger, the origin account, and the instant the operation executes at.
// All account loads go through the batch so aliased addresses resolve to a
// single record.
type StateManager struct {
	batch    *database.Batch
	registry registry.Registry
	logger   *slog.Logger

	// Ctx is the operation's context, used for registry queries.
	Ctx context.Context

	// Ledger is the system ledger. Mutations take effect on commit.
	Ledger *protocol.SystemLedger

	// Origin is the caller's account.
	Origin *protocol.AccrualAccount

	// OriginAddr is the caller's address.
	OriginAddr address.Address

	// Now is the operation timestamp. Fixed for the duration of the
	// operation so every settlement within it sees the same instant.
	Now uint64
}

// Account returns the batch's record for the address.
func (st *StateManager) Account(addr address.Address) (*protocol.AccrualAccount, error) {
	return st.batch.Account(addr)
}

// Update marks the accounts' records to be stored on commit.
func (st *StateManager) Update(accounts ...*protocol.AccrualAccount) error {
	for _, acct := range accounts {
		if err := st.batch.UpdateAccount(acct); err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}
	return nil
}

// UpdateLedger marks the system ledger to be stored on commit.
func (st *StateManager) UpdateLedger() {
	st.batch.PutLedger(st.Ledger)
}

// Allowance returns the spender's allowance over the owner's balance.
func (st *StateManager) Allowance(owner, spender address.Address) (uint64, error) {
	return st.batch.Allowance(owner, spender)
}

// PutAllowance stores the spender's allowance over the owner's balance.
func (st *StateManager) PutAllowance(owner, spender address.Address, amount uint64) error {
	return st.batch.PutAllowance(owner, spender, amount)
}

// IsVerified consults the attestation registry. The answer is never cached
// beyond the operation.
func (st *StateManager) IsVerified(addr address.Address) (bool, error) {
	ok, err := st.registry.IsVerified(st.Ctx, addr)
	if err != nil {
		return false, errors.UnknownError.WithFormat("consult registry for %v: %w", addr, err)
	}
	return ok, nil
}
