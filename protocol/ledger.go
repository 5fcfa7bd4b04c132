// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/driptide/driptide/pkg/types/address"
)

// SystemLedger is the ledger's global state. The supply aggregate is
// reconciled alongside every event that changes the participant count or a
// settled balance, so the total supply never requires enumerating accounts.
type SystemLedger struct {
	// AccrualRate is the per-second rate granted to each verified
	// participant.
	AccrualRate uint64 `json:"accrualRate"`

	// Participants is the number of accounts with active primary accrual.
	Participants uint64 `json:"participants"`

	// SettledSupply is the supply as of ReconciledAt. The current supply is
	// SettledSupply + Participants × AccrualRate × elapsed.
	SettledSupply uint64 `json:"settledSupply"`

	// ReconciledAt is the timestamp the supply aggregate was last folded
	// forward.
	ReconciledAt uint64 `json:"reconciledAt"`

	// Operator may swap the attestation registry and hand off its own role.
	Operator address.Address `json:"operator"`

	// Registry is the attestation registry source.
	Registry string `json:"registry,omitempty"`
}

// TotalSupply returns the supply at the given instant.
func (l *SystemLedger) TotalSupply(t *OverflowTracker, now uint64) uint64 {
	if l.ReconciledAt == 0 || now < l.ReconciledAt {
		return l.SettledSupply
	}
	accrued := t.Mul(l.Participants, t.Mul(l.AccrualRate, now-l.ReconciledAt))
	return t.Add(l.SettledSupply, accrued)
}
