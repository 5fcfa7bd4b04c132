// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"gitlab.com/driptide/driptide/pkg/errors"
)

const (
	ErrCodeInternal   jsonrpc2.ErrorCode = -32800
	ErrCodeValidation jsonrpc2.ErrorCode = -32801
	ErrCodeNotFound   jsonrpc2.ErrorCode = -32802

	// ErrCodeLedgerBase offsets ledger status codes into the JSON-RPC error
	// space: code = ErrCodeLedgerBase - status.
	ErrCodeLedgerBase jsonrpc2.ErrorCode = -33000
)

func validatorError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeValidation, "Validation Error", err.Error())
}

func internalError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeInternal, "Internal Error", err.Error())
}

func ledgerError(err error) jsonrpc2.Error {
	if errors.Is(err, errors.NotFound) {
		return jsonrpc2.NewError(ErrCodeNotFound, "Ledger Error", "Not Found")
	}

	var lerr *errors.Error
	if errors.As(err, &lerr) {
		return jsonrpc2.NewError(ErrCodeLedgerBase-jsonrpc2.ErrorCode(lerr.Code), "Ledger Error", lerr.Message)
	}
	if code := errors.Code(err); code != 0 {
		return jsonrpc2.NewError(ErrCodeLedgerBase-jsonrpc2.ErrorCode(code), "Ledger Error", err.Error())
	}

	return internalError(err)
}
