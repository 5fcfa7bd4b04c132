// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"gitlab.com/driptide/driptide/pkg/types/address"
	"gitlab.com/driptide/driptide/protocol"
)

type StatusResponse struct {
	Ok bool `json:"ok"`
}

type VersionResponse struct {
	Version        string `json:"version"`
	Commit         string `json:"commit,omitempty"`
	VersionIsKnown bool   `json:"versionIsKnown"`
}

type AccountRequest struct {
	Address address.Address `json:"address" validate:"required"`
}

type AllowanceRequest struct {
	Owner   address.Address `json:"owner" validate:"required"`
	Spender address.Address `json:"spender" validate:"required"`
}

type AllowanceResponse struct {
	Owner   address.Address `json:"owner"`
	Spender address.Address `json:"spender"`
	Amount  uint64          `json:"amount"`
}

type StartAccrualRequest struct {
	Origin address.Address `json:"origin" validate:"required"`
}

type ReportRemovalRequest struct {
	Origin  address.Address `json:"origin" validate:"required"`
	Account address.Address `json:"account" validate:"required"`
}

type OpenStreamRequest struct {
	Origin      address.Address `json:"origin" validate:"required"`
	Destination address.Address `json:"destination" validate:"required"`
	Percent     uint64          `json:"percent" validate:"required,max=100"`
}

type CloseStreamRequest struct {
	Origin      address.Address `json:"origin" validate:"required"`
	Destination address.Address `json:"destination" validate:"required"`
}

type SendTokensRequest struct {
	Origin address.Address           `json:"origin" validate:"required"`
	To     []protocol.TokenRecipient `json:"to" validate:"required,min=1"`
}

type BurnTokensRequest struct {
	Origin  address.Address `json:"origin" validate:"required"`
	Amount  uint64          `json:"amount" validate:"required"`
	Content []byte          `json:"content,omitempty"`
}

type ApproveTokensRequest struct {
	Origin  address.Address `json:"origin" validate:"required"`
	Spender address.Address `json:"spender" validate:"required"`
	Amount  uint64          `json:"amount"`
}

type TransferFromRequest struct {
	Origin address.Address `json:"origin" validate:"required"`
	From   address.Address `json:"from" validate:"required"`
	To     address.Address `json:"to" validate:"required"`
	Amount uint64          `json:"amount" validate:"required"`
}

type UpdateRegistryRequest struct {
	Origin address.Address `json:"origin" validate:"required"`
	Source string          `json:"source" validate:"required"`
}

type TransferOperatorRequest struct {
	Origin address.Address `json:"origin" validate:"required"`
	To     address.Address `json:"to" validate:"required"`
}

type OperationResponse struct {
	Ok   bool   `json:"ok"`
	Type string `json:"type"`
}
