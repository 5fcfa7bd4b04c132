// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/driptide/driptide/internal/chain"
	"gitlab.com/driptide/driptide/internal/clock"
	"gitlab.com/driptide/driptide/internal/database"
	"gitlab.com/driptide/driptide/internal/registry"
	"gitlab.com/driptide/driptide/pkg/database/keyvalue/memory"
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
	"gitlab.com/driptide/driptide/protocol"
)

var (
	alice    = addr(1)
	bob      = addr(2)
	carol    = addr(3)
	dave     = addr(4)
	operator = addr(0xFF)
)

func addr(b byte) address.Address {
	var a address.Address
	a[19] = b
	return a
}

func setup(t *testing.T) (*chain.Executor, *clock.Fake, *registry.Static) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ck := clock.NewFake(1000)
	reg := registry.NewStatic()
	x, err := chain.NewExecutor(chain.Options{
		Database: database.Open(memory.New(), logger),
		Clock:    ck,
		Logger:   logger,
		Registry: reg,
		Operator: operator,
	})
	require.NoError(t, err)
	return x, ck, reg
}

func execute(t *testing.T, x *chain.Executor, origin address.Address, op protocol.Operation) {
	t.Helper()
	require.NoError(t, x.Execute(context.Background(), origin, op))
}

func balance(t *testing.T, x *chain.Executor, a address.Address) *chain.Balance {
	t.Helper()
	b, err := x.GetBalance(a)
	require.NoError(t, err)
	return b
}

func supply(t *testing.T, x *chain.Executor) *chain.Supply {
	t.Helper()
	s, err := x.GetTotalSupply()
	require.NoError(t, err)
	return s
}

func TestStartAccrual(t *testing.T) {
	x, ck, reg := setup(t)

	// Unverified accounts cannot start
	err := x.Execute(context.Background(), alice, &protocol.StartAccrual{})
	require.ErrorIs(t, err, errors.NotAttested)

	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})

	// Starting twice is rejected
	err = x.Execute(context.Background(), alice, &protocol.StartAccrual{})
	require.ErrorIs(t, err, errors.AlreadyAccruing)

	// Value accrues lazily: no operation is needed for the balance to grow
	ck.Advance(10)
	b := balance(t, x, alice)
	require.Equal(t, uint64(0), b.Settled)
	require.Equal(t, uint64(1000), b.Unrealized)
	require.Equal(t, uint64(1000), b.Total)

	s := supply(t, x)
	require.Equal(t, uint64(1), s.Participants)
	require.Equal(t, uint64(1000), s.Total)
}

func TestBalanceQueryDoesNotSettle(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})

	ck.Advance(5)
	require.Equal(t, uint64(500), balance(t, x, alice).Total)
	require.Equal(t, uint64(500), balance(t, x, alice).Total)

	// The stored record is untouched by queries
	acct, err := x.GetAccount(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(0), acct.Balance)
	require.Equal(t, uint64(1000), acct.AccruedSince)
}

func TestOpenStream(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})

	ck.Advance(10)
	execute(t, x, alice, &protocol.OpenStream{Destination: bob, Percent: 1})

	// Opening settled alice under the full rate first
	require.Equal(t, uint64(1000), balance(t, x, alice).Settled)

	// From here alice accrues at 99 and bob at 1
	ck.Advance(10)
	require.Equal(t, uint64(1990), balance(t, x, alice).Total)
	require.Equal(t, uint64(10), balance(t, x, bob).Total)

	// The split never changes the aggregate
	require.Equal(t, uint64(2000), supply(t, x).Total)
}

func TestOpenStreamRejections(t *testing.T) {
	x, _, reg := setup(t)
	reg.Add(alice)

	err := x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: bob, Percent: 1})
	require.ErrorIs(t, err, errors.NotAccruing)

	execute(t, x, alice, &protocol.StartAccrual{})

	err = x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: address.Zero, Percent: 1})
	require.ErrorIs(t, err, errors.BadRequest)

	err = x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: bob, Percent: 0})
	require.ErrorIs(t, err, errors.BadRequest)

	err = x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: bob, Percent: 101})
	require.ErrorIs(t, err, errors.BadRequest)

	execute(t, x, alice, &protocol.OpenStream{Destination: bob, Percent: 60})
	err = x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: carol, Percent: 60})
	require.ErrorIs(t, err, errors.RateCapExceeded)

	err = x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: bob, Percent: 10})
	require.ErrorIs(t, err, errors.DuplicateStream)

	// Losing attestation blocks new streams even while accrual is running
	reg.Remove(alice)
	err = x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: dave, Percent: 10})
	require.ErrorIs(t, err, errors.NotAttested)
}

func TestStreamLimit(t *testing.T) {
	x, _, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})

	for i := 0; i < protocol.MaxStreams; i++ {
		execute(t, x, alice, &protocol.OpenStream{Destination: addr(byte(10 + i)), Percent: 1})
	}
	err := x.Execute(context.Background(), alice, &protocol.OpenStream{Destination: addr(99), Percent: 1})
	require.ErrorIs(t, err, errors.StreamLimit)

	// Closing one stream frees a slot for another
	execute(t, x, alice, &protocol.CloseStream{Destination: addr(12)})
	execute(t, x, alice, &protocol.OpenStream{Destination: addr(99), Percent: 1})

	acct, err := x.GetAccount(alice)
	require.NoError(t, err)
	require.Len(t, acct.Streams, protocol.MaxStreams)

	var sum uint64
	for _, edge := range acct.Streams {
		sum += edge.Rate
	}
	require.Equal(t, acct.OutgoingRate, sum)
}

func TestCloseStream(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})

	ck.Advance(10)
	execute(t, x, alice, &protocol.OpenStream{Destination: bob, Percent: 50})
	ck.Advance(10)

	// A de-attested source cannot close its streams
	reg.Remove(alice)
	err := x.Execute(context.Background(), alice, &protocol.CloseStream{Destination: bob})
	require.ErrorIs(t, err, errors.NotAttested)
	reg.Add(alice)

	execute(t, x, alice, &protocol.CloseStream{Destination: bob})

	// Closing settled both sides: bob keeps what the stream delivered
	require.Equal(t, uint64(500), balance(t, x, bob).Settled)

	// Alice accrues at the full rate again
	ck.Advance(10)
	require.Equal(t, uint64(2500), balance(t, x, alice).Total)
	require.Equal(t, uint64(500), balance(t, x, bob).Total)
	require.Equal(t, uint64(3000), supply(t, x).Total)

	err = x.Execute(context.Background(), alice, &protocol.CloseStream{Destination: bob})
	require.ErrorIs(t, err, errors.StreamNotActive)

	acct, err := x.GetAccount(alice)
	require.NoError(t, err)
	require.Empty(t, acct.Streams)
	require.Equal(t, uint64(0), acct.OutgoingRate)

	acct, err = x.GetAccount(bob)
	require.NoError(t, err)
	require.Equal(t, uint64(0), acct.IncomingRate)
	require.Equal(t, uint64(0), acct.IncomingSince)
}

func TestCloseOneStreamOfMany(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})
	execute(t, x, alice, &protocol.OpenStream{Destination: bob, Percent: 10})
	execute(t, x, alice, &protocol.OpenStream{Destination: carol, Percent: 20})

	ck.Advance(10)
	execute(t, x, alice, &protocol.CloseStream{Destination: bob})

	// Carol's stream is untouched
	ck.Advance(10)
	require.Equal(t, uint64(100), balance(t, x, bob).Total)
	require.Equal(t, uint64(400), balance(t, x, carol).Total)
	require.Equal(t, uint64(1500), balance(t, x, alice).Total)
	require.Equal(t, uint64(2000), supply(t, x).Total)
}

func TestReportRemoval(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})

	ck.Advance(10)
	execute(t, x, alice, &protocol.OpenStream{Destination: bob, Percent: 10})
	ck.Advance(10)

	// Reporting a still-verified account is rejected
	err := x.Execute(context.Background(), carol, &protocol.ReportRemoval{Account: alice})
	require.ErrorIs(t, err, errors.StillAttested)

	reg.Remove(alice)
	execute(t, x, carol, &protocol.ReportRemoval{Account: alice})

	// Everything pending since the last settlements goes to the reporter:
	// alice's primary 90/s and bob's incoming 10/s, 10 seconds each
	require.Equal(t, uint64(1000), balance(t, x, carol).Total)

	// Alice keeps only what was already settled, bob got nothing pending
	require.Equal(t, uint64(1000), balance(t, x, alice).Total)
	require.Equal(t, uint64(0), balance(t, x, bob).Total)

	s := supply(t, x)
	require.Equal(t, uint64(0), s.Participants)
	require.Equal(t, uint64(2000), s.Total)

	// Reporting again is rejected
	err = x.Execute(context.Background(), carol, &protocol.ReportRemoval{Account: alice})
	require.ErrorIs(t, err, errors.NotAccruing)

	acct, err := x.GetAccount(alice)
	require.NoError(t, err)
	require.Empty(t, acct.Streams)
	require.Equal(t, uint64(0), acct.OutgoingRate)
	require.Equal(t, uint64(0), acct.AccruedSince)
}

func TestReportRemovalByDestination(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})
	execute(t, x, alice, &protocol.OpenStream{Destination: bob, Percent: 10})

	ck.Advance(10)
	reg.Remove(alice)

	// Bob is both a destination and the reporter: one record serves both
	// roles, so the reclaim lands on top of his stream state
	execute(t, x, bob, &protocol.ReportRemoval{Account: alice})
	require.Equal(t, uint64(1000), balance(t, x, bob).Total)
	require.Equal(t, uint64(0), balance(t, x, alice).Total)
	require.Equal(t, uint64(1000), supply(t, x).Total)
}

func TestReportRemovalBySelf(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})

	ck.Advance(10)
	reg.Remove(alice)

	// An account may report its own removal and keep its pending accrual
	execute(t, x, alice, &protocol.ReportRemoval{Account: alice})
	require.Equal(t, uint64(1000), balance(t, x, alice).Total)
	require.Equal(t, uint64(1000), supply(t, x).Total)
}

func TestReportRemovalDestinationKeepsOtherStreams(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	reg.Add(bob)
	execute(t, x, alice, &protocol.StartAccrual{})
	execute(t, x, bob, &protocol.StartAccrual{})
	execute(t, x, alice, &protocol.OpenStream{Destination: carol, Percent: 10})
	execute(t, x, bob, &protocol.OpenStream{Destination: carol, Percent: 20})

	ck.Advance(10)
	reg.Remove(alice)
	execute(t, x, dave, &protocol.ReportRemoval{Account: alice})

	// Carol keeps bob's share of her incoming accrual; only alice's share
	// was reclaimed
	require.Equal(t, uint64(200), balance(t, x, carol).Total)
	// Dave reclaims alice's primary 90/s plus her stream's 10/s
	require.Equal(t, uint64(1000), balance(t, x, dave).Total)

	// Bob's stream keeps running
	ck.Advance(10)
	require.Equal(t, uint64(400), balance(t, x, carol).Total)

	var sum uint64
	for _, a := range []address.Address{alice, bob, carol, dave} {
		sum += balance(t, x, a).Total
	}
	require.Equal(t, supply(t, x).Total, sum)
}

func TestSendTokens(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})
	ck.Advance(10)

	// Accrued value settles on demand, so the full 1000 is spendable
	execute(t, x, alice, &protocol.SendTokens{To: []protocol.TokenRecipient{
		{To: bob, Amount: 600},
		{To: carol, Amount: 400},
	}})
	require.Equal(t, uint64(0), balance(t, x, alice).Total)
	require.Equal(t, uint64(600), balance(t, x, bob).Total)
	require.Equal(t, uint64(400), balance(t, x, carol).Total)
	require.Equal(t, uint64(1000), supply(t, x).Total)

	err := x.Execute(context.Background(), alice, &protocol.SendTokens{To: []protocol.TokenRecipient{{To: bob, Amount: 1}}})
	require.ErrorIs(t, err, errors.InsufficientBalance)
}

func TestSendTokensToSelf(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})
	ck.Advance(10)

	execute(t, x, alice, &protocol.SendTokens{To: []protocol.TokenRecipient{{To: alice, Amount: 1000}}})
	require.Equal(t, uint64(1000), balance(t, x, alice).Total)
}

func TestSendTokensRejections(t *testing.T) {
	x, _, _ := setup(t)

	err := x.Execute(context.Background(), alice, &protocol.SendTokens{})
	require.ErrorIs(t, err, errors.BadRequest)

	err = x.Execute(context.Background(), alice, &protocol.SendTokens{To: []protocol.TokenRecipient{{To: address.Zero, Amount: 1}}})
	require.ErrorIs(t, err, errors.BadRequest)

	err = x.Execute(context.Background(), alice, &protocol.SendTokens{To: []protocol.TokenRecipient{{To: bob, Amount: 0}}})
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestBurnTokens(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})
	ck.Advance(10)

	execute(t, x, alice, &protocol.BurnTokens{Amount: 300, Content: []byte("receipt")})
	require.Equal(t, uint64(700), balance(t, x, alice).Total)

	// Burning shrinks the supply by exactly the burned amount
	require.Equal(t, uint64(700), supply(t, x).Total)

	err := x.Execute(context.Background(), alice, &protocol.BurnTokens{Amount: 10000})
	require.ErrorIs(t, err, errors.InsufficientBalance)
}

func TestApproveAndTransferFrom(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})
	ck.Advance(10)

	execute(t, x, alice, &protocol.ApproveTokens{Spender: bob, Amount: 500})
	allowance, err := x.GetAllowance(alice, bob)
	require.NoError(t, err)
	require.Equal(t, uint64(500), allowance)

	execute(t, x, bob, &protocol.TransferFrom{From: alice, To: carol, Amount: 300})
	require.Equal(t, uint64(700), balance(t, x, alice).Total)
	require.Equal(t, uint64(300), balance(t, x, carol).Total)

	// The allowance shrinks by the spent amount
	allowance, err = x.GetAllowance(alice, bob)
	require.NoError(t, err)
	require.Equal(t, uint64(200), allowance)

	err = x.Execute(context.Background(), bob, &protocol.TransferFrom{From: alice, To: carol, Amount: 201})
	require.ErrorIs(t, err, errors.InsufficientAllowance)

	// Re-approval overwrites, zero revokes
	execute(t, x, alice, &protocol.ApproveTokens{Spender: bob, Amount: 0})
	err = x.Execute(context.Background(), bob, &protocol.TransferFrom{From: alice, To: carol, Amount: 1})
	require.ErrorIs(t, err, errors.InsufficientAllowance)
}

func TestUpdateRegistry(t *testing.T) {
	x, _, _ := setup(t)

	err := x.Execute(context.Background(), alice, &protocol.UpdateRegistry{Source: "static:" + dave.String()})
	require.ErrorIs(t, err, errors.NotAllowed)

	// Dave is unknown to the seeded registry
	err = x.Execute(context.Background(), dave, &protocol.StartAccrual{})
	require.ErrorIs(t, err, errors.NotAttested)

	execute(t, x, operator, &protocol.UpdateRegistry{Source: "static:" + dave.String()})
	execute(t, x, dave, &protocol.StartAccrual{})

	ledger, err := x.GetLedger()
	require.NoError(t, err)
	require.Equal(t, "static:"+dave.String(), ledger.Registry)
}

func TestUpdateRegistryBadSource(t *testing.T) {
	x, _, _ := setup(t)

	// An unparseable source is rejected before anything executes
	err := x.Execute(context.Background(), operator, &protocol.UpdateRegistry{Source: "bogus"})
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestTransferOperator(t *testing.T) {
	x, _, _ := setup(t)

	err := x.Execute(context.Background(), alice, &protocol.TransferOperator{To: bob})
	require.ErrorIs(t, err, errors.NotAllowed)

	execute(t, x, operator, &protocol.TransferOperator{To: alice})

	// The old operator lost the role
	err = x.Execute(context.Background(), operator, &protocol.TransferOperator{To: bob})
	require.ErrorIs(t, err, errors.NotAllowed)

	execute(t, x, alice, &protocol.TransferOperator{To: bob})
	ledger, err := x.GetLedger()
	require.NoError(t, err)
	require.Equal(t, bob, ledger.Operator)
}

func TestRejectedOperationChangesNothing(t *testing.T) {
	x, ck, reg := setup(t)
	reg.Add(alice)
	execute(t, x, alice, &protocol.StartAccrual{})
	ck.Advance(10)

	// The send settles alice before failing on the balance check, but the
	// settlement is discarded with the batch
	err := x.Execute(context.Background(), alice, &protocol.SendTokens{To: []protocol.TokenRecipient{{To: bob, Amount: 5000}}})
	require.ErrorIs(t, err, errors.InsufficientBalance)

	acct, err := x.GetAccount(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(0), acct.Balance)
	require.Equal(t, uint64(1000), acct.AccruedSince)
	require.Equal(t, uint64(1000), balance(t, x, alice).Total)
}

// Exercises the stream graph over several rate changes and checks the supply
// aggregate against the sum of every balance at each step.
func TestSupplyConservation(t *testing.T) {
	x, ck, reg := setup(t)
	accounts := []address.Address{alice, bob, carol, dave}

	check := func() {
		t.Helper()
		var sum uint64
		for _, a := range accounts {
			sum += balance(t, x, a).Total
		}
		require.Equal(t, supply(t, x).Total, sum)
	}

	reg.Add(alice)
	reg.Add(bob)
	execute(t, x, alice, &protocol.StartAccrual{})
	check()

	ck.Advance(7)
	execute(t, x, bob, &protocol.StartAccrual{})
	check()

	ck.Advance(3)
	execute(t, x, alice, &protocol.OpenStream{Destination: carol, Percent: 25})
	execute(t, x, bob, &protocol.OpenStream{Destination: carol, Percent: 100})
	check()

	ck.Advance(11)
	execute(t, x, alice, &protocol.OpenStream{Destination: dave, Percent: 5})
	check()

	ck.Advance(13)
	execute(t, x, alice, &protocol.CloseStream{Destination: carol})
	check()

	ck.Advance(5)
	execute(t, x, carol, &protocol.SendTokens{To: []protocol.TokenRecipient{{To: dave, Amount: 100}}})
	check()

	ck.Advance(2)
	reg.Remove(bob)
	execute(t, x, carol, &protocol.ReportRemoval{Account: bob})
	check()

	ck.Advance(9)
	execute(t, x, carol, &protocol.BurnTokens{Amount: 50})
	check()

	ck.Advance(17)
	reg.Remove(alice)
	execute(t, x, dave, &protocol.ReportRemoval{Account: alice})
	check()

	require.Equal(t, uint64(0), supply(t, x).Participants)

	// With no participants the supply is frozen
	before := supply(t, x).Total
	ck.Advance(100)
	require.Equal(t, before, supply(t, x).Total)
	check()
}
