// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package address

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	a, err := Parse("0x00112233445566778899aabbccddeeff00112233")
	require.NoError(t, err)
	require.Equal(t, "0x00112233445566778899aabbccddeeff00112233", a.String())

	// The prefix is optional and parsing is case insensitive
	b, err := Parse("00112233445566778899AABBCCDDEEFF00112233")
	require.NoError(t, err)
	require.True(t, a.Equal(b))
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse("0x1234")
	require.Error(t, err)
	_, err = Parse("0xzz112233445566778899aabbccddeeff00112233")
	require.Error(t, err)
}

func TestZero(t *testing.T) {
	require.True(t, Zero.IsZero())
	require.False(t, MustParse("0x0000000000000000000000000000000000000001").IsZero())
}

func TestJSONRoundTrip(t *testing.T) {
	a := MustParse("0xffeeddccbbaa99887766554433221100ffeeddcc")
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var b Address
	require.NoError(t, json.Unmarshal(data, &b))
	require.Equal(t, a, b)
}
