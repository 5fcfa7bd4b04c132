// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/stretchr/testify/require"
	"gitlab.com/driptide/driptide/internal/api"
	"gitlab.com/driptide/driptide/internal/chain"
	"gitlab.com/driptide/driptide/internal/clock"
	"gitlab.com/driptide/driptide/internal/database"
	"gitlab.com/driptide/driptide/internal/registry"
	"gitlab.com/driptide/driptide/pkg/database/keyvalue/memory"
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
)

func setup(t *testing.T) (*api.JrpcMethods, *clock.Fake, *registry.Static) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ck := clock.NewFake(1000)
	reg := registry.NewStatic()
	x, err := chain.NewExecutor(chain.Options{
		Database: database.Open(memory.New(), logger),
		Clock:    ck,
		Logger:   logger,
		Registry: reg,
	})
	require.NoError(t, err)

	m, err := api.NewJrpc(api.Options{Executor: x, Logger: logger})
	require.NoError(t, err)
	return m, ck, reg
}

func params(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestStartAccrualAndQueryBalance(t *testing.T) {
	m, ck, reg := setup(t)
	alice := address.MustParse("0x0000000000000000000000000000000000000001")
	reg.Add(alice)

	res := m.StartAccrual(context.Background(), params(t, api.StartAccrualRequest{Origin: alice}))
	op, ok := res.(*api.OperationResponse)
	require.True(t, ok, "got %T: %v", res, res)
	require.True(t, op.Ok)

	ck.Advance(10)
	res = m.QueryBalance(context.Background(), params(t, api.AccountRequest{Address: alice}))
	balance, ok := res.(*chain.Balance)
	require.True(t, ok, "got %T: %v", res, res)
	require.Equal(t, uint64(1000), balance.Total)
}

func TestRequestValidation(t *testing.T) {
	m, _, _ := setup(t)

	// Missing origin
	res := m.OpenStream(context.Background(), params(t, map[string]interface{}{
		"destination": "0x0000000000000000000000000000000000000002",
		"percent":     1,
	}))
	jerr, ok := res.(jsonrpc2.Error)
	require.True(t, ok, "got %T: %v", res, res)
	require.Equal(t, api.ErrCodeValidation, jerr.Code)

	// Percent out of range
	res = m.OpenStream(context.Background(), params(t, map[string]interface{}{
		"origin":      "0x0000000000000000000000000000000000000001",
		"destination": "0x0000000000000000000000000000000000000002",
		"percent":     101,
	}))
	jerr, ok = res.(jsonrpc2.Error)
	require.True(t, ok, "got %T: %v", res, res)
	require.Equal(t, api.ErrCodeValidation, jerr.Code)
}

func TestLedgerErrorMapping(t *testing.T) {
	m, _, _ := setup(t)
	bob := address.MustParse("0x0000000000000000000000000000000000000002")

	// Bob is not attested, the status code rides the JSON-RPC error code
	res := m.StartAccrual(context.Background(), params(t, api.StartAccrualRequest{Origin: bob}))
	jerr, ok := res.(jsonrpc2.Error)
	require.True(t, ok, "got %T: %v", res, res)
	require.Equal(t, api.ErrCodeLedgerBase-jsonrpc2.ErrorCode(errors.NotAttested), jerr.Code)
}

func TestQuerySupply(t *testing.T) {
	m, ck, reg := setup(t)
	alice := address.MustParse("0x0000000000000000000000000000000000000001")
	reg.Add(alice)

	res := m.StartAccrual(context.Background(), params(t, api.StartAccrualRequest{Origin: alice}))
	require.IsType(t, (*api.OperationResponse)(nil), res, fmt.Sprint(res))

	ck.Advance(5)
	res = m.QuerySupply(context.Background(), nil)
	supply, ok := res.(*chain.Supply)
	require.True(t, ok, "got %T: %v", res, res)
	require.Equal(t, uint64(500), supply.Total)
	require.Equal(t, uint64(1), supply.Participants)
}
