// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/protocol"
)

// Settle realizes the account's pending accrual (the remaining primary
// share and the incoming-stream share) into its settled balance, and
// advances both active timers to now. Settle must run before any change to
// the account's rates, timers, or settled balance: settling under the old
// rate first is what keeps accrued value from being lost or double counted.
// Settling twice at the same instant is a no-op the second time.
func (st *StateManager) Settle(acct *protocol.AccrualAccount) error {
	ot := new(protocol.OverflowTracker)

	if acct.AccruedSince != 0 {
		rate := ot.Sub(st.Ledger.AccrualRate, acct.OutgoingRate)
		pending := protocol.PendingAccrual(ot, rate, acct.AccruedSince, st.Now)
		acct.Balance = ot.Add(acct.Balance, pending)
		acct.AccruedSince = st.Now
	}

	if acct.IncomingSince != 0 {
		pending := protocol.PendingAccrual(ot, acct.IncomingRate, acct.IncomingSince, st.Now)
		acct.Balance = ot.Add(acct.Balance, pending)
		acct.IncomingSince = st.Now
	}

	if ot.Overflowed {
		return errors.FatalError.WithFormat("settle %v: accrual arithmetic overflow", acct.Address)
	}
	return st.Update(acct)
}

// ReconcileSupply folds the accrual of every active participant since the
// last reconciliation into the settled supply and advances the
// reconciliation timestamp. Must run, within the same operation, before any
// change to the participant count or the settled supply; that is what lets
// the aggregate stay exact without ever enumerating accounts.
func (st *StateManager) ReconcileSupply() error {
	ot := new(protocol.OverflowTracker)

	if st.Ledger.ReconciledAt != 0 {
		accrued := protocol.PendingAccrual(ot, ot.Mul(st.Ledger.Participants, st.Ledger.AccrualRate), st.Ledger.ReconciledAt, st.Now)
		st.Ledger.SettledSupply = ot.Add(st.Ledger.SettledSupply, accrued)
	}
	st.Ledger.ReconciledAt = st.Now

	if ot.Overflowed {
		return errors.FatalError.With("reconcile supply: arithmetic overflow")
	}
	st.UpdateLedger()
	return nil
}
