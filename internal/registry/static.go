// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package registry

import (
	"context"
	"sync"

	"gitlab.com/driptide/driptide/pkg/types/address"
)

// Static is a fixed in-process registry, for development and tests.
type Static struct {
	mu       sync.RWMutex
	verified map[address.Address]bool
}

var _ Registry = (*Static)(nil)

func NewStatic(addrs ...address.Address) *Static {
	s := &Static{verified: map[address.Address]bool{}}
	for _, a := range addrs {
		s.verified[a] = true
	}
	return s
}

func (s *Static) IsVerified(_ context.Context, addr address.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verified[addr], nil
}

// Add marks the address as verified.
func (s *Static) Add(addr address.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verified[addr] = true
}

// Remove clears the address's verification.
func (s *Static) Remove(addr address.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.verified, addr)
}
