// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"encoding/json"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"gitlab.com/driptide/driptide/pkg/types/address"
	"gitlab.com/driptide/driptide/protocol"
)

func (m *JrpcMethods) populateMethodTable() {
	if m.methods == nil {
		m.methods = make(jsonrpc2.MethodMap, 17)
	}

	// Queries
	m.methods["status"] = m.Status
	m.methods["version"] = m.Version
	m.methods["query-account"] = m.QueryAccount
	m.methods["query-balance"] = m.QueryBalance
	m.methods["query-supply"] = m.QuerySupply
	m.methods["query-allowance"] = m.QueryAllowance
	m.methods["query-ledger"] = m.QueryLedger

	// Operations
	m.methods["start-accrual"] = m.StartAccrual
	m.methods["report-removal"] = m.ReportRemoval
	m.methods["open-stream"] = m.OpenStream
	m.methods["close-stream"] = m.CloseStream
	m.methods["send-tokens"] = m.SendTokens
	m.methods["burn-tokens"] = m.BurnTokens
	m.methods["approve-tokens"] = m.ApproveTokens
	m.methods["transfer-from"] = m.TransferFrom
	m.methods["update-registry"] = m.UpdateRegistry
	m.methods["transfer-operator"] = m.TransferOperator
}

func (m *JrpcMethods) execute(ctx context.Context, origin address.Address, op protocol.Operation) interface{} {
	err := m.Executor.Execute(ctx, origin, op)
	if err != nil {
		return ledgerError(err)
	}
	return &OperationResponse{Ok: true, Type: op.Type().String()}
}

func (m *JrpcMethods) StartAccrual(ctx context.Context, params json.RawMessage) interface{} {
	req := new(StartAccrualRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.StartAccrual{})
}

func (m *JrpcMethods) ReportRemoval(ctx context.Context, params json.RawMessage) interface{} {
	req := new(ReportRemovalRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.ReportRemoval{Account: req.Account})
}

func (m *JrpcMethods) OpenStream(ctx context.Context, params json.RawMessage) interface{} {
	req := new(OpenStreamRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.OpenStream{Destination: req.Destination, Percent: req.Percent})
}

func (m *JrpcMethods) CloseStream(ctx context.Context, params json.RawMessage) interface{} {
	req := new(CloseStreamRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.CloseStream{Destination: req.Destination})
}

func (m *JrpcMethods) SendTokens(ctx context.Context, params json.RawMessage) interface{} {
	req := new(SendTokensRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.SendTokens{To: req.To})
}

func (m *JrpcMethods) BurnTokens(ctx context.Context, params json.RawMessage) interface{} {
	req := new(BurnTokensRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.BurnTokens{Amount: req.Amount, Content: req.Content})
}

func (m *JrpcMethods) ApproveTokens(ctx context.Context, params json.RawMessage) interface{} {
	req := new(ApproveTokensRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.ApproveTokens{Spender: req.Spender, Amount: req.Amount})
}

func (m *JrpcMethods) TransferFrom(ctx context.Context, params json.RawMessage) interface{} {
	req := new(TransferFromRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.TransferFrom{From: req.From, To: req.To, Amount: req.Amount})
}

func (m *JrpcMethods) UpdateRegistry(ctx context.Context, params json.RawMessage) interface{} {
	req := new(UpdateRegistryRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.UpdateRegistry{Source: req.Source})
}

func (m *JrpcMethods) TransferOperator(ctx context.Context, params json.RawMessage) interface{} {
	req := new(TransferOperatorRequest)
	if err := m.parse(params, req); err != nil {
		return err
	}
	return m.execute(ctx, req.Origin, &protocol.TransferOperator{To: req.To})
}
