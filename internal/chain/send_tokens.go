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

type SendTokens struct{}

func (SendTokens) Type() protocol.OperationType { return protocol.OperationTypeSendTokens }

func (SendTokens) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.SendTokens)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeSendTokens, op.Type())
	}

	if len(body.To) == 0 {
		return errors.BadRequest.With("no recipients")
	}
	ot := new(protocol.OverflowTracker)
	var total uint64
	for i, to := range body.To {
		if to.To.IsZero() {
			return errors.BadRequest.WithFormat("recipient %d is the zero address", i)
		}
		if to.Amount == 0 {
			return errors.BadRequest.WithFormat("recipient %d amount is zero", i)
		}
		total = ot.Add(total, to.Amount)
	}
	if ot.Overflowed {
		return errors.BadRequest.With("total amount overflows")
	}

	// Accrued value spends as soon as it is settled
	if err := st.Settle(st.Origin); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !st.Origin.CanDebitTokens(total) {
		return errors.InsufficientBalance.WithFormat("balance %d is less than %d", st.Origin.Balance, total)
	}
	st.Origin.DebitTokens(total)

	for _, to := range body.To {
		acct, err := st.Account(to.To)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
		if !acct.CreditTokens(to.Amount) {
			return errors.FatalError.WithFormat("credit %v: balance overflow", to.To)
		}
		if err := st.Update(acct); err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}

	return st.Update(st.Origin)
}
