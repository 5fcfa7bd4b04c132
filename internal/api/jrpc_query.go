// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"encoding/json"

	"gitlab.com/driptide/driptide"
)

func (m *JrpcMethods) Status(_ context.Context, _ json.RawMessage) interface{} {
	return &StatusResponse{Ok: true}
}

func (m *JrpcMethods) Version(_ context.Context, _ json.RawMessage) interface{} {
	return &VersionResponse{
		Version:        driptide.Version,
		Commit:         driptide.Commit,
		VersionIsKnown: driptide.IsVersionKnown(),
	}
}

func (m *JrpcMethods) QueryAccount(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}

	acct, err := m.Executor.GetAccount(req.Address)
	if err != nil {
		return ledgerError(err)
	}
	return acct
}

func (m *JrpcMethods) QueryBalance(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}

	balance, err := m.Executor.GetBalance(req.Address)
	if err != nil {
		return ledgerError(err)
	}
	return balance
}

func (m *JrpcMethods) QuerySupply(_ context.Context, _ json.RawMessage) interface{} {
	supply, err := m.Executor.GetTotalSupply()
	if err != nil {
		return ledgerError(err)
	}
	return supply
}

func (m *JrpcMethods) QueryAllowance(_ context.Context, params json.RawMessage) interface{} {
	req := new(AllowanceRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}

	amount, err := m.Executor.GetAllowance(req.Owner, req.Spender)
	if err != nil {
		return ledgerError(err)
	}
	return &AllowanceResponse{Owner: req.Owner, Spender: req.Spender, Amount: amount}
}

func (m *JrpcMethods) QueryLedger(_ context.Context, _ json.RawMessage) interface{} {
	ledger, err := m.Executor.GetLedger()
	if err != nil {
		return ledgerError(err)
	}
	return ledger
}
