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

type UpdateRegistry struct{}

func (UpdateRegistry) Type() protocol.OperationType { return protocol.OperationTypeUpdateRegistry }

// Validate records the new registry source. The executor constructs the
// replacement registry before the batch opens and swaps it in after the
// commit succeeds, so a source that fails to parse never reaches the ledger.
func (UpdateRegistry) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.UpdateRegistry)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeUpdateRegistry, op.Type())
	}

	if st.OriginAddr != st.Ledger.Operator {
		return errors.NotAllowed.WithFormat("%v is not the operator", st.OriginAddr)
	}
	if body.Source == "" {
		return errors.BadRequest.With("registry source is empty")
	}

	st.Ledger.Registry = body.Source
	st.UpdateLedger()
	return nil
}
