// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package config loads and stores the daemon's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
)

const (
	configDir  = "config"
	configFile = "driptide.toml"
)

type StorageType string

const (
	MemoryStorage StorageType = "memory"
	BadgerStorage StorageType = "badger"
)

type LogFormat string

const (
	LogPlain LogFormat = "plain"
	LogJSON  LogFormat = "json"
)

type Config struct {
	RootDir string `toml:"-" mapstructure:"-"`

	Accrual Accrual `toml:"accrual" mapstructure:"accrual"`
	Storage Storage `toml:"storage" mapstructure:"storage"`
	API     API     `toml:"api" mapstructure:"api"`
	Logging Logging `toml:"logging" mapstructure:"logging"`
}

type Accrual struct {
	// Rate is the per-second accrual rate granted to each verified
	// participant. Only applied when the ledger is first created.
	Rate uint64 `toml:"rate" mapstructure:"rate"`

	// Operator is the hex address of the operator account.
	Operator string `toml:"operator" mapstructure:"operator"`

	// Registry is the attestation registry source, either
	// "static:<addr>,<addr>,..." or the URL of a registry JSON-RPC server.
	Registry string `toml:"registry" mapstructure:"registry"`
}

type Storage struct {
	Type StorageType `toml:"type" mapstructure:"type"`
	Path string      `toml:"path" mapstructure:"path"`
}

type API struct {
	ListenAddress string `toml:"listen-address" mapstructure:"listen-address"`
}

type Logging struct {
	Format LogFormat `toml:"format" mapstructure:"format"`
	Level  string    `toml:"level" mapstructure:"level"`
}

func Default() *Config {
	c := new(Config)
	c.Accrual.Rate = 100
	c.Accrual.Registry = "static:"
	c.Storage.Type = BadgerStorage
	c.Storage.Path = filepath.Join("data", "driptide.db")
	c.API.ListenAddress = "http://127.0.0.1:26660"
	c.Logging.Format = LogPlain
	c.Logging.Level = "info"
	return c
}

func MakeAbsolute(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, configDir, configFile))
	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read: %v", err)
	}

	config := Default()
	err = v.Unmarshal(config)
	if err != nil {
		return nil, fmt.Errorf("unmarshal: %v", err)
	}

	config.RootDir = dir
	return config, nil
}

func Store(config *Config) error {
	err := os.MkdirAll(filepath.Join(config.RootDir, configDir), 0700)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(config.RootDir, configDir, configFile))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(config)
}
