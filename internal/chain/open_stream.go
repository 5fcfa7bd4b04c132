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

type OpenStream struct{}

func (OpenStream) Type() protocol.OperationType { return protocol.OperationTypeOpenStream }

func (OpenStream) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.OpenStream)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeOpenStream, op.Type())
	}

	if body.Destination.IsZero() {
		return errors.BadRequest.With("destination is the zero address")
	}
	if len(st.Origin.Streams) >= protocol.MaxStreams {
		return errors.StreamLimit.WithFormat("%v already has %d outgoing streams", st.OriginAddr, protocol.MaxStreams)
	}
	if !st.Origin.IsAccruing() {
		return errors.NotAccruing.WithFormat("%v has no active accrual", st.OriginAddr)
	}

	if body.Percent == 0 || body.Percent > protocol.PercentBasis {
		return errors.BadRequest.WithFormat("invalid percent %d, want 1 to %d", body.Percent, protocol.PercentBasis)
	}
	ot := new(protocol.OverflowTracker)
	rate := ot.Mul(st.Ledger.AccrualRate, body.Percent) / protocol.PercentBasis
	if ot.Overflowed {
		return errors.BadRequest.WithFormat("invalid percent %d: rate overflow", body.Percent)
	}
	if rate == 0 {
		return errors.BadRequest.WithFormat("percent %d of rate %d rounds to zero", body.Percent, st.Ledger.AccrualRate)
	}

	newOut := ot.Add(st.Origin.OutgoingRate, rate)
	if ot.Overflowed || newOut > st.Ledger.AccrualRate {
		return errors.RateCapExceeded.WithFormat("outgoing rate %d plus %d exceeds accrual rate %d", st.Origin.OutgoingRate, rate, st.Ledger.AccrualRate)
	}
	if st.Origin.Stream(body.Destination) >= 0 {
		return errors.DuplicateStream.WithFormat("%v already streams to %v", st.OriginAddr, body.Destination)
	}

	verified, err := st.IsVerified(st.OriginAddr)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !verified {
		return errors.NotAttested.WithFormat("%v is not a verified participant", st.OriginAddr)
	}

	dest, err := st.Account(body.Destination)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	// Settle both sides under their old rates before changing either rate
	if err := st.Settle(dest); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if err := st.Settle(st.Origin); err != nil {
		return errors.UnknownError.Wrap(err)
	}

	st.Origin.Streams = append(st.Origin.Streams, protocol.StreamEdge{Destination: body.Destination, Rate: rate})
	st.Origin.OutgoingRate = newOut

	dest.IncomingRate = ot.Add(dest.IncomingRate, rate)
	if ot.Overflowed {
		return errors.FatalError.WithFormat("open stream %v → %v: incoming rate overflow", st.OriginAddr, body.Destination)
	}
	if dest.IncomingSince == 0 {
		dest.IncomingSince = st.Now
	}

	return st.Update(st.Origin, dest)
}
