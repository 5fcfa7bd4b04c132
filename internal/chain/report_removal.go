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

type ReportRemoval struct{}

func (ReportRemoval) Type() protocol.OperationType { return protocol.OperationTypeReportRemoval }

// Validate closes the removed account's accrual and every outgoing stream,
// crediting the whole reclaim to the reporter. The reporter can be anyone.
// The stream bound keeps the closing loop a fixed amount of work.
func (ReportRemoval) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.ReportRemoval)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeReportRemoval, op.Type())
	}

	if body.Account.IsZero() {
		return errors.BadRequest.With("account is the zero address")
	}
	verified, err := st.IsVerified(body.Account)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if verified {
		return errors.StillAttested.WithFormat("%v is still a verified participant", body.Account)
	}

	removed, err := st.Account(body.Account)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !removed.IsAccruing() {
		return errors.NotAccruing.WithFormat("%v has no active accrual", body.Account)
	}

	ot := new(protocol.OverflowTracker)
	var reclaim uint64
	var outSum uint64

	// Close every outgoing edge. The destination keeps the share of its
	// incoming accrual owed by its other streams; this edge's share since
	// the destination's own settlement goes to the reclaim.
	for _, edge := range removed.Streams {
		dest, err := st.Account(edge.Destination)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}

		pending := protocol.PendingAccrual(ot, dest.IncomingRate, dest.IncomingSince, st.Now)
		share := protocol.PendingAccrual(ot, edge.Rate, dest.IncomingSince, st.Now)
		dest.Balance = ot.Add(dest.Balance, ot.Sub(pending, share))
		reclaim = ot.Add(reclaim, share)

		dest.IncomingRate = ot.Sub(dest.IncomingRate, edge.Rate)
		if dest.IncomingRate == 0 {
			dest.IncomingSince = 0
		} else {
			dest.IncomingSince = st.Now
		}
		outSum = ot.Add(outSum, edge.Rate)

		if err := st.Update(dest); err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}

	// Every edge must be accounted for against the outgoing total. A
	// mismatch is an invariant breach, not a recoverable condition.
	if ot.Overflowed || outSum != removed.OutgoingRate {
		return errors.FatalError.WithFormat("remove %v: edges carry rate %d, account records %d", body.Account, outSum, removed.OutgoingRate)
	}

	// The removed account's remaining primary share goes to the reclaim,
	// not to the account
	remaining := ot.Sub(st.Ledger.AccrualRate, removed.OutgoingRate)
	reclaim = ot.Add(reclaim, protocol.PendingAccrual(ot, remaining, removed.AccruedSince, st.Now))

	closed := len(removed.Streams)
	removed.Streams = nil
	removed.OutgoingRate = 0
	removed.AccruedSince = 0
	if err := st.Update(removed); err != nil {
		return errors.UnknownError.Wrap(err)
	}

	// The reporter may be the removed account or one of the destinations;
	// the batch's account cache resolves all three paths to one record
	reporter := st.Origin
	reporter.Balance = ot.Add(reporter.Balance, reclaim)
	if ot.Overflowed {
		return errors.FatalError.WithFormat("remove %v: reclaim arithmetic overflow", body.Account)
	}
	if err := st.Update(reporter); err != nil {
		return errors.UnknownError.Wrap(err)
	}

	if err := st.ReconcileSupply(); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if st.Ledger.Participants == 0 {
		return errors.FatalError.With("participant count underflow")
	}
	st.Ledger.Participants--
	st.UpdateLedger()

	st.logger.Info("Closed removed account",
		"account", body.Account,
		"reporter", st.OriginAddr,
		"reclaim", reclaim,
		"streams", closed)
	return nil
}
