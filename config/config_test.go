// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	// Create
	cfg := Default()
	cfg.RootDir = dir
	cfg.Accrual.Rate = 250
	cfg.Accrual.Operator = "0x00000000000000000000000000000000000000ff"
	cfg.Accrual.Registry = "static:0x0000000000000000000000000000000000000001"
	cfg.Storage.Type = MemoryStorage
	cfg.API.ListenAddress = "http://127.0.0.1:30000"

	// Store
	require.NoError(t, Store(cfg))

	// Load
	lcfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, cfg, lcfg)
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.RootDir = dir
	require.NoError(t, Store(cfg))

	lcfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, uint64(100), lcfg.Accrual.Rate)
	require.Equal(t, BadgerStorage, lcfg.Storage.Type)
	require.Equal(t, LogPlain, lcfg.Logging.Format)

	// The default registry source must be one the daemon can start with
	require.Equal(t, "static:", lcfg.Accrual.Registry)
}
