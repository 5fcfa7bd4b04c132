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

type CloseStream struct{}

func (CloseStream) Type() protocol.OperationType { return protocol.OperationTypeCloseStream }

func (CloseStream) Validate(st *StateManager, op protocol.Operation) error {
	body, ok := op.(*protocol.CloseStream)
	if !ok {
		return errors.InternalError.WithFormat("invalid payload: want %v, got %v", protocol.OperationTypeCloseStream, op.Type())
	}

	verified, err := st.IsVerified(st.OriginAddr)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !verified {
		return errors.NotAttested.WithFormat("%v is not a verified participant", st.OriginAddr)
	}
	if body.Destination.IsZero() {
		return errors.BadRequest.With("destination is the zero address")
	}
	i := st.Origin.Stream(body.Destination)
	if i < 0 {
		return errors.StreamNotActive.WithFormat("%v has no stream to %v", st.OriginAddr, body.Destination)
	}
	rate := st.Origin.Streams[i].Rate

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

	ot := new(protocol.OverflowTracker)
	dest.IncomingRate = ot.Sub(dest.IncomingRate, rate)
	st.Origin.OutgoingRate = ot.Sub(st.Origin.OutgoingRate, rate)
	if ot.Overflowed {
		return errors.FatalError.WithFormat("close stream %v → %v: rate underflow", st.OriginAddr, body.Destination)
	}
	if dest.IncomingRate == 0 {
		dest.IncomingSince = 0
	}

	// Closing one stream must not perturb the others
	st.Origin.RemoveStream(i)

	return st.Update(st.Origin, dest)
}
