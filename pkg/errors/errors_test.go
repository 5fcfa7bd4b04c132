// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStatus(t *testing.T) {
	err := NotAttested.WithFormat("account %s is not verified", "foo")
	require.True(t, Is(err, NotAttested))
	require.False(t, Is(err, StillAttested))
}

func TestWrapPreservesCode(t *testing.T) {
	inner := InsufficientBalance.With("have 1, want 2")
	outer := UnknownError.Wrap(inner)
	require.Equal(t, InsufficientBalance, Code(outer))

	// A known code overrides the inner code
	outer = InternalError.Wrap(inner)
	require.Equal(t, InternalError, Code(outer))
	require.True(t, Is(outer, InsufficientBalance))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, BadRequest.Wrap(nil))
}

func TestWithFormatCause(t *testing.T) {
	err := EncodingError.WithFormat("decode account: %w", io.ErrUnexpectedEOF)
	require.True(t, Is(err, io.ErrUnexpectedEOF))
	require.Equal(t, EncodingError, Code(err))
}

func TestCodeOfPlainError(t *testing.T) {
	require.Equal(t, UnknownError, Code(fmt.Errorf("plain")))
	require.Equal(t, OK, Code(nil))
}

func TestClientServerSplit(t *testing.T) {
	for _, s := range []Status{BadRequest, NotAttested, StillAttested, AlreadyAccruing, NotAccruing, DuplicateStream, StreamNotActive, StreamLimit, RateCapExceeded, InsufficientBalance, InsufficientAllowance} {
		require.True(t, s.IsClientError(), s.String())
	}
	for _, s := range []Status{InternalError, EncodingError, FatalError} {
		require.True(t, s.IsServerError(), s.String())
	}
}
