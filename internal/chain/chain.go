// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package chain executes ledger operations. Every operation is atomic:
// preconditions are checked before any record changes, and a failure at any
// point discards the batch, leaving the store exactly as it was.
package chain

import (
	"gitlab.com/driptide/driptide/protocol"
)

// OperationExecutor validates and executes one type of operation.
// Validate must check every precondition before mutating any record: a
// returned error guarantees no state change (the batch is discarded), and
// consistency failures abort the whole operation.
type OperationExecutor interface {
	Type() protocol.OperationType
	Validate(st *StateManager, op protocol.Operation) error
}

func newExecutorMap() map[protocol.OperationType]OperationExecutor {
	m := map[protocol.OperationType]OperationExecutor{}
	for _, x := range []OperationExecutor{
		StartAccrual{},
		ReportRemoval{},
		OpenStream{},
		CloseStream{},
		SendTokens{},
		BurnTokens{},
		ApproveTokens{},
		TransferFrom{},
		UpdateRegistry{},
		TransferOperator{},
	} {
		m[x.Type()] = x
	}
	return m
}
