// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"fmt"

	"gitlab.com/driptide/driptide/pkg/types/address"
)

// OperationType distinguishes operation bodies.
type OperationType uint64

const (
	OperationTypeUnknown OperationType = iota
	OperationTypeStartAccrual
	OperationTypeReportRemoval
	OperationTypeOpenStream
	OperationTypeCloseStream
	OperationTypeSendTokens
	OperationTypeBurnTokens
	OperationTypeApproveTokens
	OperationTypeTransferFrom
	OperationTypeUpdateRegistry
	OperationTypeTransferOperator
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeStartAccrual:
		return "startAccrual"
	case OperationTypeReportRemoval:
		return "reportRemoval"
	case OperationTypeOpenStream:
		return "openStream"
	case OperationTypeCloseStream:
		return "closeStream"
	case OperationTypeSendTokens:
		return "sendTokens"
	case OperationTypeBurnTokens:
		return "burnTokens"
	case OperationTypeApproveTokens:
		return "approveTokens"
	case OperationTypeTransferFrom:
		return "transferFrom"
	case OperationTypeUpdateRegistry:
		return "updateRegistry"
	case OperationTypeTransferOperator:
		return "transferOperator"
	default:
		return fmt.Sprintf("OperationType:%d", uint64(t))
	}
}

// Operation is an operation body.
type Operation interface {
	Type() OperationType
}

// StartAccrual begins primary accrual for the origin.
type StartAccrual struct{}

// ReportRemoval closes the account's primary accrual and all of its outgoing
// streams, crediting the reclaimed value to the reporter. Callable by
// anyone.
type ReportRemoval struct {
	Account address.Address `json:"account"`
}

// OpenStream redirects a percentage of the origin's accrual rate to the
// destination.
type OpenStream struct {
	Destination address.Address `json:"destination"`
	Percent     uint64          `json:"percent"`
}

// CloseStream removes the origin's outgoing stream to the destination.
type CloseStream struct {
	Destination address.Address `json:"destination"`
}

// TokenRecipient is one recipient of a SendTokens operation.
type TokenRecipient struct {
	To     address.Address `json:"to"`
	Amount uint64          `json:"amount"`
}

// SendTokens moves settled balance from the origin to the recipients.
type SendTokens struct {
	To []TokenRecipient `json:"to"`
}

// BurnTokens destroys settled balance. If Content is set, it is handed to
// the publish sink after the burn commits.
type BurnTokens struct {
	Amount  uint64 `json:"amount"`
	Content []byte `json:"content,omitempty"`
}

// ApproveTokens sets the allowance of the spender over the origin's balance.
type ApproveTokens struct {
	Spender address.Address `json:"spender"`
	Amount  uint64          `json:"amount"`
}

// TransferFrom spends the origin's allowance over the From account.
type TransferFrom struct {
	From   address.Address `json:"from"`
	To     address.Address `json:"to"`
	Amount uint64          `json:"amount"`
}

// UpdateRegistry swaps the attestation registry source. Operator only.
type UpdateRegistry struct {
	Source string `json:"source"`
}

// TransferOperator hands the operator role to another address. Operator
// only.
type TransferOperator struct {
	To address.Address `json:"to"`
}

func (StartAccrual) Type() OperationType     { return OperationTypeStartAccrual }
func (ReportRemoval) Type() OperationType    { return OperationTypeReportRemoval }
func (OpenStream) Type() OperationType       { return OperationTypeOpenStream }
func (CloseStream) Type() OperationType      { return OperationTypeCloseStream }
func (SendTokens) Type() OperationType       { return OperationTypeSendTokens }
func (BurnTokens) Type() OperationType       { return OperationTypeBurnTokens }
func (ApproveTokens) Type() OperationType    { return OperationTypeApproveTokens }
func (TransferFrom) Type() OperationType     { return OperationTypeTransferFrom }
func (UpdateRegistry) Type() OperationType   { return OperationTypeUpdateRegistry }
func (TransferOperator) Type() OperationType { return OperationTypeTransferOperator }
