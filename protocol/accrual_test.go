// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/driptide/driptide/pkg/types/address"
)

func TestOverflowTracker(t *testing.T) {
	ot := new(OverflowTracker)
	require.Equal(t, uint64(5), ot.Add(2, 3))
	require.Equal(t, uint64(6), ot.Mul(2, 3))
	require.Equal(t, uint64(1), ot.Sub(3, 2))
	require.False(t, ot.Overflowed)

	ot.Add(math.MaxUint64, 1)
	require.True(t, ot.Overflowed)

	ot = new(OverflowTracker)
	ot.Mul(math.MaxUint64, 2)
	require.True(t, ot.Overflowed)

	ot = new(OverflowTracker)
	ot.Sub(1, 2)
	require.True(t, ot.Overflowed)
}

func TestPendingAccrual(t *testing.T) {
	ot := new(OverflowTracker)

	// Idle timer accrues nothing
	require.Zero(t, PendingAccrual(ot, 100, 0, 50))

	// rate × elapsed
	require.Equal(t, uint64(10000), PendingAccrual(ot, 100, 10, 110))
	require.False(t, ot.Overflowed)

	// A timer in the future is an invariant breach
	PendingAccrual(ot, 100, 200, 100)
	require.True(t, ot.Overflowed)
}

func TestUnrealizedValue(t *testing.T) {
	acct := &AccrualAccount{
		AccruedSince:  100,
		IncomingSince: 150,
		IncomingRate:  7,
		OutgoingRate:  25,
	}

	ot := new(OverflowTracker)
	// (100-25)×100 primary + 7×50 incoming
	require.Equal(t, uint64(75*100+7*50), acct.UnrealizedValue(ot, 100, 200))
	require.False(t, ot.Overflowed)

	// Both timers idle
	idle := new(AccrualAccount)
	require.Zero(t, idle.UnrealizedValue(ot, 100, 200))
	require.False(t, ot.Overflowed)
}

func TestAccountRoundTrip(t *testing.T) {
	acct := &AccrualAccount{
		Address:       address.MustParse("0x00112233445566778899aabbccddeeff00112233"),
		Balance:       12345,
		AccruedSince:  100,
		IncomingSince: 200,
		IncomingRate:  3,
		OutgoingRate:  7,
		Streams: []StreamEdge{
			{Destination: address.MustParse("0x0000000000000000000000000000000000000001"), Rate: 4},
			{Destination: address.MustParse("0x0000000000000000000000000000000000000002"), Rate: 3},
		},
	}

	data, err := acct.MarshalBinary()
	require.NoError(t, err)

	loaded := new(AccrualAccount)
	require.NoError(t, loaded.UnmarshalBinary(data))
	require.Equal(t, acct, loaded)
}

func TestLedgerRoundTrip(t *testing.T) {
	ledger := &SystemLedger{
		AccrualRate:   100,
		Participants:  3,
		SettledSupply: 999,
		ReconciledAt:  42,
		Operator:      address.MustParse("0xffeeddccbbaa99887766554433221100ffeeddcc"),
		Registry:      "static:",
	}

	data, err := ledger.MarshalBinary()
	require.NoError(t, err)

	loaded := new(SystemLedger)
	require.NoError(t, loaded.UnmarshalBinary(data))
	require.Equal(t, ledger, loaded)
}

func TestAccountRejectsTruncated(t *testing.T) {
	acct := &AccrualAccount{Balance: 1}
	data, err := acct.MarshalBinary()
	require.NoError(t, err)
	require.Error(t, new(AccrualAccount).UnmarshalBinary(data[:len(data)-1]))
}

func TestRemoveStream(t *testing.T) {
	a := address.MustParse("0x000000000000000000000000000000000000000a")
	b := address.MustParse("0x000000000000000000000000000000000000000b")
	c := address.MustParse("0x000000000000000000000000000000000000000c")
	acct := &AccrualAccount{Streams: []StreamEdge{{a, 1}, {b, 2}, {c, 3}}}

	i := acct.Stream(b)
	require.Equal(t, 1, i)
	acct.RemoveStream(i)
	require.Len(t, acct.Streams, 2)
	require.Equal(t, -1, acct.Stream(b))
	require.NotEqual(t, -1, acct.Stream(a))
	require.NotEqual(t, -1, acct.Stream(c))
}
