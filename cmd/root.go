// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "authdata-service",
	Short: "Identity federation gateway for the MPASSid authentication proxy",
	Long: `authdata-service answers single-user and roster queries from a canonical
local record store and from the external identity systems users are bound to.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
