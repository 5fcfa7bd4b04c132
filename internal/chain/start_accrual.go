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

type StartAccrual struct{}

func (StartAccrual) Type() protocol.OperationType { return protocol.OperationTypeStartAccrual }

func (StartAccrual) Validate(st *StateManager, op protocol.Operation) error {
	_, ok := op.(*protocol.StartAccrual)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeStartAccrual, op.Type())
	}

	verified, err := st.IsVerified(st.OriginAddr)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !verified {
		return errors.NotAttested.WithFormat("%v is not a verified participant", st.OriginAddr)
	}
	if st.Origin.IsAccruing() {
		return errors.AlreadyAccruing.WithFormat("%v is already accruing", st.OriginAddr)
	}

	// Fold the aggregate forward under the old participant count before the
	// count changes
	if err := st.ReconcileSupply(); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	st.Ledger.Participants++
	st.UpdateLedger()

	st.Origin.AccruedSince = st.Now
	return st.Update(st.Origin)
}
