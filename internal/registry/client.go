// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package registry

import (
	"context"
	"time"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
)

// Client queries a remote registry over JSON-RPC.
type Client struct {
	server string
	jsonrpc2.Client
}

var _ Registry = (*Client)(nil)

func NewClient(server string) *Client {
	c := &Client{server: server}
	c.Timeout = 15 * time.Second
	return c
}

// VerifiedRequest is the is-verified request.
type VerifiedRequest struct {
	Address address.Address `json:"address"`
}

// VerifiedResponse is the is-verified response.
type VerifiedResponse struct {
	Verified bool `json:"verified"`
}

func (c *Client) IsVerified(ctx context.Context, addr address.Address) (bool, error) {
	req := &VerifiedRequest{Address: addr}
	resp := new(VerifiedResponse)
	err := c.Client.Request(ctx, c.server, "is-verified", req, resp)
	if err != nil {
		return false, errors.UnknownError.WithFormat("query registry: %w", err)
	}
	return resp.Verified, nil
}
