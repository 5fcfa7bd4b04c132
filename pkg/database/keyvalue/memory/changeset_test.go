// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/driptide/driptide/pkg/errors"
)

func TestChangeSetVisibility(t *testing.T) {
	db := New()

	cs := db.Begin(true)
	require.NoError(t, cs.Put("foo", []byte("bar")))

	// The change set sees its own writes
	v, err := cs.Get("foo")
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), v)

	// The database does not, until commit
	_, err = db.Begin(false).Get("foo")
	require.True(t, errors.Is(err, errors.NotFound))

	require.NoError(t, cs.Commit())

	v, err = db.Begin(false).Get("foo")
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), v)
}

func TestDiscard(t *testing.T) {
	db := New()

	cs := db.Begin(true)
	require.NoError(t, cs.Put("foo", []byte("bar")))
	cs.Discard()

	_, err := db.Begin(false).Get("foo")
	require.True(t, errors.Is(err, errors.NotFound))
}

func TestDelete(t *testing.T) {
	db := New()

	cs := db.Begin(true)
	require.NoError(t, cs.Put("foo", []byte("bar")))
	require.NoError(t, cs.Commit())

	cs = db.Begin(true)
	require.NoError(t, cs.Delete("foo"))

	// The delete is visible within the change set
	_, err := cs.Get("foo")
	require.True(t, errors.Is(err, errors.NotFound))

	require.NoError(t, cs.Commit())
	_, err = db.Begin(false).Get("foo")
	require.True(t, errors.Is(err, errors.NotFound))
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	db := New()
	cs := db.Begin(false)
	require.Error(t, cs.Put("foo", []byte("bar")))
	require.Error(t, cs.Delete("foo"))
}
