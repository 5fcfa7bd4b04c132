// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/driptide/driptide"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Display the version",
	Run:   showVersion,
	Args:  cobra.NoArgs,
}

func init() {
	cmdMain.AddCommand(cmdVersion)
}

func showVersion(*cobra.Command, []string) {
	fmt.Println(driptide.Version)
	if driptide.Commit != "" {
		fmt.Println(driptide.Commit)
	}
}
