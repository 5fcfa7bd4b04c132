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

type BurnTokens struct{}

func (BurnTokens) Type() protocol.OperationType { return protocol.OperationTypeBurnTokens }

func (BurnTokens) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.BurnTokens)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeBurnTokens, op.Type())
	}

	if body.Amount == 0 {
		return errors.BadRequest.With("amount is zero")
	}

	if err := st.Settle(st.Origin); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !st.Origin.CanDebitTokens(body.Amount) {
		return errors.InsufficientBalance.WithFormat("balance %d is less than %d", st.Origin.Balance, body.Amount)
	}
	st.Origin.DebitTokens(body.Amount)
	if err := st.Update(st.Origin); err != nil {
		return errors.UnknownError.Wrap(err)
	}

	// A burn shrinks the supply, so the aggregate must be current before
	// the subtraction
	if err := st.ReconcileSupply(); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if st.Ledger.SettledSupply < body.Amount {
		return errors.FatalError.WithFormat("burn %d exceeds settled supply %d", body.Amount, st.Ledger.SettledSupply)
	}
	st.Ledger.SettledSupply -= body.Amount
	st.UpdateLedger()

	return nil
}
