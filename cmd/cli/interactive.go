// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"pxc/cmd/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive [args...]",
	Aliases: []string{"int"},
	Short:   "Search commands as you type and run the best match",
	Long: `Opens an incremental search over all command names. Typing narrows the
list, shortest names first; Enter runs the highlighted command, Escape exits.
Any arguments are passed to the selected command; put "--" before
arguments that start with a dash.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, ok, err := tui.RunInteractive(entryStore.Entries())
		if err != nil {
			return reportf(cmd, "Error: %v", err)
		}
		if !ok {
			return nil
		}
		runEntry(cmd, name, strings.Join(args, " "))
		return nil
	},
}

func init() {
	interactiveCmd.Flags().SetInterspersed(false)
}
