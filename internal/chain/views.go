// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
	"gitlab.com/driptide/driptide/protocol"
)

// Balance is a point-in-time view of an account's value.
type Balance struct {
	Settled    uint64 `json:"settled"`
	Unrealized uint64 `json:"unrealized"`
	Total      uint64 `json:"total"`
}

// Supply is a point-in-time view of the ledger aggregate.
type Supply struct {
	Total        uint64 `json:"total"`
	Settled      uint64 `json:"settled"`
	Participants uint64 `json:"participants"`
	AccrualRate  uint64 `json:"accrualRate"`
	Timestamp    uint64 `json:"timestamp"`
}

// GetAccount returns the account's stored state. Purely computed views of
// the account come from GetBalance.
func (x *Executor) GetAccount(addr address.Address) (*protocol.AccrualAccount, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(false)
	defer batch.Discard()

	acct, err := batch.Account(addr)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return acct, nil
}

// GetBalance returns the account's settled balance, its unrealized accrual
// at this instant, and their sum. No state changes.
func (x *Executor) GetBalance(addr address.Address) (*Balance, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(false)
	defer batch.Discard()

	ledger, err := batch.Ledger()
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	acct, err := batch.Account(addr)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	ot := new(protocol.OverflowTracker)
	unrealized := acct.UnrealizedValue(ot, ledger.AccrualRate, x.clock.Now())
	total := ot.Add(acct.Balance, unrealized)
	if ot.Overflowed {
		return nil, errors.FatalError.WithFormat("balance of %v: arithmetic overflow", addr)
	}
	return &Balance{Settled: acct.Balance, Unrealized: unrealized, Total: total}, nil
}

// GetTotalSupply returns the supply aggregate at this instant, computed
// without enumerating accounts.
func (x *Executor) GetTotalSupply() (*Supply, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(false)
	defer batch.Discard()

	ledger, err := batch.Ledger()
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	now := x.clock.Now()
	ot := new(protocol.OverflowTracker)
	total := ledger.TotalSupply(ot, now)
	if ot.Overflowed {
		return nil, errors.FatalError.With("total supply: arithmetic overflow")
	}
	return &Supply{
		Total:        total,
		Settled:      ledger.SettledSupply,
		Participants: ledger.Participants,
		AccrualRate:  ledger.AccrualRate,
		Timestamp:    now,
	}, nil
}

// GetAllowance returns the spender's allowance over the owner's balance.
func (x *Executor) GetAllowance(owner, spender address.Address) (uint64, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(false)
	defer batch.Discard()
	return batch.Allowance(owner, spender)
}

// GetLedger returns the system ledger's stored state.
func (x *Executor) GetLedger() (*protocol.SystemLedger, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.db.Begin(false)
	defer batch.Discard()
	return batch.Ledger()
}
