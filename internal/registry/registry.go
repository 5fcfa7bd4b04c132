// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package registry defines the attestation oracle consumed by the ledger.
// The registry is an external collaborator: the ledger consults it and
// never caches an answer beyond a single operation.
package registry

import (
	"context"
	"strings"

	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
)

// Registry attests whether an account is a verified unique participant.
type Registry interface {
	IsVerified(ctx context.Context, addr address.Address) (bool, error)
}

// New constructs a registry from a source string. "static:" followed by a
// comma-separated address list yields a fixed in-process registry;
// "http://" or "https://" yields a JSON-RPC client for a remote registry.
func New(source string) (Registry, error) {
	switch {
	case strings.HasPrefix(source, "static:"):
		list := strings.TrimPrefix(source, "static:")
		var addrs []address.Address
		for _, s := range strings.Split(list, ",") {
			if s == "" {
				continue
			}
			addr, err := address.Parse(s)
			if err != nil {
				return nil, errors.BadRequest.WithFormat("registry source: %w", err)
			}
			addrs = append(addrs, addr)
		}
		return NewStatic(addrs...), nil

	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewClient(source), nil

	default:
		return nil, errors.BadRequest.WithFormat("unsupported registry source %q", source)
	}
}
