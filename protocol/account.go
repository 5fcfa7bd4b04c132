// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/driptide/driptide/pkg/types/address"
)

// AccrualAccount is the per-account accrual state. Accounts spring into
// existence on first reference with every field zero and are never deleted;
// the timers transition between active (non-zero) and idle (zero).
type AccrualAccount struct {
	Address address.Address `json:"address"`

	// Balance is the settled balance. Only settled value is transferable.
	Balance uint64 `json:"balance"`

	// AccruedSince is the timestamp primary accrual has been running from,
	// or zero if the account is not accruing as a verified participant.
	AccruedSince uint64 `json:"accruedSince,omitempty"`

	// IncomingSince is the timestamp incoming-stream accrual has been
	// running from, or zero if the account has no active incoming streams.
	IncomingSince uint64 `json:"incomingSince,omitempty"`

	// IncomingRate is the sum of stream rates flowing in from other
	// accounts.
	IncomingRate uint64 `json:"incomingRate,omitempty"`

	// OutgoingRate is the sum of the account's outgoing stream rates. Must
	// not exceed the ledger accrual rate while primary accrual is active.
	OutgoingRate uint64 `json:"outgoingRate,omitempty"`

	// Streams is the account's outgoing edges, at most MaxStreams, with no
	// duplicate destination. Order is not significant.
	Streams []StreamEdge `json:"streams,omitempty"`
}

// StreamEdge is one outgoing stream.
type StreamEdge struct {
	Destination address.Address `json:"destination"`
	Rate        uint64          `json:"rate"`
}

// IsAccruing returns true if primary accrual is active.
func (a *AccrualAccount) IsAccruing() bool { return a.AccruedSince != 0 }

// CreditTokens adds to the settled balance. Returns false on overflow.
func (a *AccrualAccount) CreditTokens(amount uint64) bool {
	sum := a.Balance + amount
	if sum < a.Balance {
		return false
	}
	a.Balance = sum
	return true
}

// CanDebitTokens returns true if the settled balance covers the amount.
func (a *AccrualAccount) CanDebitTokens(amount uint64) bool {
	return a.Balance >= amount
}

// DebitTokens subtracts from the settled balance. Returns false if the
// balance cannot cover the amount.
func (a *AccrualAccount) DebitTokens(amount uint64) bool {
	if !a.CanDebitTokens(amount) {
		return false
	}
	a.Balance -= amount
	return true
}

// Stream returns the index of the outgoing edge to the destination, or -1.
func (a *AccrualAccount) Stream(destination address.Address) int {
	for i, e := range a.Streams {
		if e.Destination == destination {
			return i
		}
	}
	return -1
}

// RemoveStream removes the edge at the index by swapping it with the last
// edge and shrinking the list. Edge order is not significant.
func (a *AccrualAccount) RemoveStream(i int) {
	last := len(a.Streams) - 1
	a.Streams[i] = a.Streams[last]
	a.Streams = a.Streams[:last]
}

// UnrealizedValue returns the account's accrued but unsettled value at the
// given instant: the remaining primary share plus the incoming-stream share,
// each zero while its timer is idle.
func (a *AccrualAccount) UnrealizedValue(t *OverflowTracker, accrualRate, now uint64) uint64 {
	var primary uint64
	if a.AccruedSince != 0 {
		primary = PendingAccrual(t, t.Sub(accrualRate, a.OutgoingRate), a.AccruedSince, now)
	}
	incoming := PendingAccrual(t, a.IncomingRate, a.IncomingSince, now)
	return t.Add(primary, incoming)
}
