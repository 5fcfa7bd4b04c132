// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/driptide/driptide/config"
	"gitlab.com/driptide/driptide/pkg/types/address"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Initialize the working directory",
	Run:   initNode,
	Args:  cobra.NoArgs,
}

var flagInit = struct {
	Rate     uint64
	Operator string
	Registry string
	Memory   bool
	Force    bool
}{}

func init() {
	cmdMain.AddCommand(cmdInit)

	cmdInit.Flags().Uint64Var(&flagInit.Rate, "rate", 100, "Per-second accrual rate for verified participants")
	cmdInit.Flags().StringVar(&flagInit.Operator, "operator", "", "Hex address of the operator account")
	cmdInit.Flags().StringVar(&flagInit.Registry, "registry", "static:", "Attestation registry source (static:<addr>,... or a URL)")
	cmdInit.Flags().BoolVar(&flagInit.Memory, "memory", false, "Use in-memory storage instead of Badger")
	cmdInit.Flags().BoolVarP(&flagInit.Force, "force", "f", false, "Overwrite an existing configuration")
}

func initNode(*cobra.Command, []string) {
	if flagInit.Operator != "" {
		_, err := address.Parse(flagInit.Operator)
		checkf(err, "--operator")
	}

	file := filepath.Join(flagMain.WorkDir, "config", "driptide.toml")
	if _, err := os.Stat(file); err == nil && !flagInit.Force {
		fatalf("%s exists, use --force to overwrite", file)
	}

	cfg := config.Default()
	cfg.RootDir = flagMain.WorkDir
	cfg.Accrual.Rate = flagInit.Rate
	cfg.Accrual.Operator = flagInit.Operator
	cfg.Accrual.Registry = flagInit.Registry
	if flagInit.Memory {
		cfg.Storage.Type = config.MemoryStorage
		cfg.Storage.Path = ""
	}

	check(config.Store(cfg))

	color.HiGreen("Wrote %s", file)
}
