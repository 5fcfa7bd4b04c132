// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package address

import (
	"bytes"
	"encoding/hex"
	"strings"

	"gitlab.com/driptide/driptide/pkg/errors"
)

// Length is the length of an address in bytes.
const Length = 20

// Address identifies an account. The zero value is not a valid account
// identifier.
type Address [Length]byte

// Zero is the zero address.
var Zero Address

// Parse parses a 40-digit hex string as an address. The 0x prefix may be
// omitted. Parsing is case insensitive.
func Parse(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*Length {
		return Zero, errors.BadRequest.WithFormat("invalid address %q: want %d hex digits, got %d", s, 2*Length, len(s))
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return Zero, errors.BadRequest.WithFormat("invalid address %q: %w", s, err)
	}
	return a, nil
}

// MustParse calls Parse and panics if it returns an error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromBytes constructs an address from a byte slice.
func FromBytes(b []byte) (Address, error) {
	if len(b) != Length {
		return Zero, errors.BadRequest.WithFormat("invalid address: want %d bytes, got %d", Length, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte { return a[:] }

// IsZero returns true if the address is the zero address.
func (a Address) IsZero() bool { return a == Zero }

// Equal returns true if the addresses are equal.
func (a Address) Equal(b Address) bool { return a == b }

// Compare orders addresses lexicographically.
func (a Address) Compare(b Address) int { return bytes.Compare(a[:], b[:]) }

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	b, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = b
	return nil
}
