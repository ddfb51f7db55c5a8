// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pxc/internal/config"
	"pxc/internal/logger"
)

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pxc configuration",
	Long: `Provides subcommands to read and change the pxc configuration file
(~/.pxc/config/config). The only setting is the editor used by add and edit.`,
}

var configGetEditorCmd = &cobra.Command{
	Use:   "get-editor",
	Short: "Show the editor used to edit commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Editor: %s\n", identifierColor.Sprint(settings.Editor))
		if settings.Editor == config.DefaultEditor {
			dimColor.Fprintln(cmd.OutOrStdout(), "(default)")
		}
		return nil
	},
}

var configSetEditorCmd = &cobra.Command{
	Use:   "set-editor <command>",
	Short: "Set the editor used to edit commands",
	Long: `Sets the editor program. The command may include arguments, e.g.
  pxc config set-editor "code --wait"
The script path is appended as the last argument.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := strings.TrimSpace(strings.Join(args, " "))
		if editor == "" {
			warnf(cmd, "Error: editor must not be empty")
			return nil
		}

		settings.Editor = editor
		if err := config.SaveConfig(paths, settings); err != nil {
			warnf(cmd, "Error saving configuration: %v", err)
			return nil
		}
		logger.Info("Editor changed", "editor", editor)
		successColor.Fprintf(cmd.OutOrStdout(), "Editor set to: %s\n", editor)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetEditorCmd)
	configCmd.AddCommand(configSetEditorCmd)
	rootCmd.AddCommand(configCmd)
}
