// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"pxc/internal/config"
	"pxc/internal/store"
)

var (
	flagNoExport bool
	flagNoEditor bool
	flagRaw      bool
)

var addCmd = &cobra.Command{
	Use:               "add <name> [category]",
	Short:             "Add a new command and open it in the editor",
	Long:              "Creates an empty script for <name>, exports its launcher and opens it in the configured editor.\nIf <name> already exists, it is opened for editing instead.",
	Example:           "  pxc add deploy ops\n  pxc add scratch",
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: categoryCompletionFunc(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !writable(cmd) {
			return nil
		}
		name := args[0]
		out := cmd.OutOrStdout()

		if _, exists := entryStore.Find(name); exists {
			statusColor.Fprintln(out, "[add] map entry with this name already exists, editing")
			if !flagNoEditor {
				editEntry(cmd, name)
			}
			return nil
		}

		category := ""
		if len(args) > 1 {
			category = args[1]
		} else {
			statusColor.Fprintf(out, "[add] adding '%s' with default category\n", name)
		}

		entry, err := entryStore.Add(name, category)
		if err != nil {
			warnf(cmd, "[add] %v", err)
			// A zero entry means nothing was created; otherwise only the map write failed.
			if entry.Identifier == "" {
				return nil
			}
		} else {
			successColor.Fprintf(out, "[add] added '%s' (%s) with identifier %s\n", entry.Name, entry.Category, identifierColor.Sprint(entry.Identifier))
		}

		if !flagNoExport {
			exportEntry(cmd, name)
		}
		if !flagNoEditor {
			editEntry(cmd, name)
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:               "edit <name> [category]",
	Short:             "Edit a command, optionally moving it to another category",
	Example:           "  pxc edit deploy\n  pxc edit deploy prod",
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: entryThenCategoryCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !writable(cmd) {
			return nil
		}
		name := args[0]
		if _, ok := entryStore.Find(name); !ok {
			warnf(cmd, "Entry '%s' not found.", name)
			return nil
		}

		if len(args) > 1 {
			statusColor.Fprintf(cmd.OutOrStdout(), "[edit] changing category to '%s'\n", args[1])
			if err := entryStore.SetCategory(name, args[1]); err != nil {
				warnf(cmd, "[edit] %v", err)
			}
		}
		if !flagNoEditor {
			editEntry(cmd, name)
		}
		return nil
	},
}

// editEntry opens the entry's script in the configured editor.
func editEntry(cmd *cobra.Command, name string) {
	entry, ok := entryStore.Find(name)
	if !ok {
		warnf(cmd, "Entry '%s' not found.", name)
		return
	}

	statusColor.Fprintf(cmd.OutOrStdout(), "[edit] editing command '%s', file: %s\n", name, identifierColor.Sprint(entry.Identifier))
	if err := cmdRunner.Edit(settings.Editor, entryStore.ScriptPath(entry)); err != nil {
		warnf(cmd, "Failed to execute editor: %v", err)
	}
}

var printCmd = &cobra.Command{
	Use:               "print <name>",
	Short:             "Print the script of a command",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: entryCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		entry, ok := entryStore.Find(name)
		if !ok {
			warnf(cmd, "[print] item with name '%s' doesn't exist", name)
			return nil
		}

		content, err := os.ReadFile(entryStore.ScriptPath(entry))
		if err != nil {
			warnf(cmd, "[print] failed to read script: %v", err)
			return nil
		}

		out := cmd.OutOrStdout()
		if flagRaw || !isTerminal(out) {
			_, _ = out.Write(content)
			return nil
		}

		rendered, err := renderScript(string(content), terminalWidth(out))
		if err != nil {
			warnf(cmd, "[print] failed to render script, printing raw: %v", err)
			_, _ = out.Write(content)
			return nil
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

// defaultTermWidth is used when the terminal size cannot be read.
const defaultTermWidth = 120

// renderScript highlights a script as a shell code block.
func renderScript(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render("```sh\n" + content + "\n```\n")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(f.Fd()); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

var extCmd = &cobra.Command{
	Use:               "ext <name>",
	Aliases:           []string{"external"},
	Short:             "Export a command as a launcher in the bin directory",
	Long:              "Writes <bin-dir>/<name>" + config.LauncherSuffix + ", a wrapper that execs the command's script with all arguments.",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: entryCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		exportEntry(cmd, args[0])
		return nil
	},
}

// exportEntry writes the launcher for an existing entry.
func exportEntry(cmd *cobra.Command, name string) {
	entry, ok := entryStore.Find(name)
	if !ok {
		warnf(cmd, "[ext] map entry with name '%s' doesn't exist!", name)
		return
	}

	if _, err := exporter.Export(name, entryStore.ScriptPath(entry)); err != nil {
		warnf(cmd, "[ext] %v", err)
		return
	}
	successColor.Fprintf(cmd.OutOrStdout(), "[ext] exported command '%s%s'\n", name, config.LauncherSuffix)
}

var rmCmd = &cobra.Command{
	Use:               "rm <name>",
	Aliases:           []string{"remove"},
	Short:             "Remove a command, its script and its launcher",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: entryCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !writable(cmd) {
			return nil
		}
		name := args[0]

		err := entryStore.Remove(name)
		if errors.Is(err, store.ErrNotFound) {
			warnf(cmd, "[rm] map entry with name '%s' doesn't exist!", name)
			return nil
		}
		if err != nil {
			warnf(cmd, "[rm] %v", err)
		}
		if _, still := entryStore.Find(name); !still {
			successColor.Fprintf(cmd.OutOrStdout(), "[rm] Removed '%s' successfully!\n", name)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&flagNoExport, "no-ext", false, "do not export a launcher")
	addCmd.Flags().BoolVar(&flagNoEditor, "no-edit", false, "do not open the editor")
	editCmd.Flags().BoolVar(&flagNoEditor, "no-edit", false, "only change the category")
	printCmd.Flags().BoolVar(&flagRaw, "raw", false, "print the script without highlighting")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(extCmd)
	rootCmd.AddCommand(rmCmd)
}
