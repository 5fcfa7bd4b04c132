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

type TransferOperator struct{}

func (TransferOperator) Type() protocol.OperationType { return protocol.OperationTypeTransferOperator }

func (TransferOperator) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.TransferOperator)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeTransferOperator, op.Type())
	}

	if st.OriginAddr != st.Ledger.Operator {
		return errors.NotAllowed.WithFormat("%v is not the operator", st.OriginAddr)
	}
	if body.To.IsZero() {
		return errors.BadRequest.With("new operator is the zero address")
	}

	st.Ledger.Operator = body.To
	st.UpdateLedger()

	st.logger.Info("Operator transferred", "from", st.OriginAddr, "to", body.To)
	return nil
}
