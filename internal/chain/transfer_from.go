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

type TransferFrom struct{}

func (TransferFrom) Type() protocol.OperationType { return protocol.OperationTypeTransferFrom }

func (TransferFrom) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.TransferFrom)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeTransferFrom, op.Type())
	}

	if body.From.IsZero() {
		return errors.BadRequest.With("source is the zero address")
	}
	if body.To.IsZero() {
		return errors.BadRequest.With("recipient is the zero address")
	}
	if body.Amount == 0 {
		return errors.BadRequest.With("amount is zero")
	}

	allowance, err := st.Allowance(body.From, st.OriginAddr)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if allowance < body.Amount {
		return errors.InsufficientAllowance.WithFormat("allowance %d is less than %d", allowance, body.Amount)
	}

	from, err := st.Account(body.From)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if err := st.Settle(from); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !from.CanDebitTokens(body.Amount) {
		return errors.InsufficientBalance.WithFormat("balance %d is less than %d", from.Balance, body.Amount)
	}
	from.DebitTokens(body.Amount)

	to, err := st.Account(body.To)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !to.CreditTokens(body.Amount) {
		return errors.FatalError.WithFormat("credit %v: balance overflow", body.To)
	}

	if err := st.PutAllowance(body.From, st.OriginAddr, allowance-body.Amount); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	return st.Update(from, to)
}
