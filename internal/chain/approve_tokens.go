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

type ApproveTokens struct{}

func (ApproveTokens) Type() protocol.OperationType { return protocol.OperationTypeApproveTokens }

func (ApproveTokens) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.ApproveTokens)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeApproveTokens, op.Type())
	}

	if body.Spender.IsZero() {
		return errors.BadRequest.With("spender is the zero address")
	}
	if body.Spender == st.OriginAddr {
		return errors.BadRequest.With("spender is the origin")
	}

	// The amount overwrites any previous allowance. Zero revokes.
	return st.PutAllowance(st.OriginAddr, body.Spender, body.Amount)
}
