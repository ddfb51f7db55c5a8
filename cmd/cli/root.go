// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pxc/internal/config"
	"pxc/internal/launcher"
	"pxc/internal/logger"
	"pxc/internal/runner"
	"pxc/internal/store"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

// Resolved once in PersistentPreRunE and read-only afterwards.
var (
	paths      config.Paths
	settings   config.Config
	entryStore *store.Store
	exporter   *launcher.Launcher
	cmdRunner  *runner.Runner

	// loadErr is set when the map file exists but could not be parsed. The
	// store is then empty, and mutations are refused so the file is not
	// overwritten.
	loadErr error
)

// errReported marks a failure that has already been printed; it only sets
// the exit status.
var errReported = errors.New("reported")

var (
	flagRoot    string
	flagBinDir  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pxc [name-or-fragment] [args...]",
	Short: "Personal command-snippet manager",
	Long: `pxc stores small shell scripts under generated identifiers, each with a
unique name and a category, and runs, edits, lists or exports them.

Running "pxc <name> [args...]" executes the script with that name. If no entry
has exactly that name, entries containing it are offered for selection.

Scripts live in ~/.pxc/cmd, the name map in ~/.pxc/map/pxc.`,
	Example: `  pxc add deploy ops
  pxc deploy --dry-run
  pxc dep
  pxc ls ops
  pxc int`,
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: entryCompletionFunc,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || isHelpToken(args[0]) {
			return cmd.Help()
		}
		return runImplicit(cmd, args[0], strings.Join(args[1:], " "))
	},
}

func isHelpToken(arg string) bool {
	switch arg {
	case "h", "-h", "--help":
		return true
	}
	return false
}

// setup resolves the layout, bootstraps the data directory, and loads the
// config and the store.
func setup(cmd *cobra.Command, args []string) error {
	// Completion only reads the store and must not create anything.
	if isCompletionRequest(cmd) {
		return nil
	}
	logger.InitLogger(cmd.Name() == "interactive", flagVerbose)

	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return reportf(cmd, "Error: %v", err)
	}
	paths, err = config.ResolvePaths(v)
	if err != nil {
		return reportf(cmd, "Error: %v", err)
	}

	created, err := config.EnsureLayout(paths)
	if err != nil {
		return reportf(cmd, "Error initializing %s: %v", paths.Root, err)
	}
	if created {
		logger.Info("Initialized data directory", "root", paths.Root)
	}

	settings, err = config.LoadConfig(paths)
	if err != nil {
		errorColor.Fprintf(cmd.ErrOrStderr(), "Error loading configuration, using defaults: %v\n", err)
		logger.Error("Failed to load config", "error", err)
	}

	exporter = launcher.New(paths)
	cmdRunner = &runner.Runner{
		Shell:  runner.DefaultShell,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	entryStore, loadErr = store.Open(paths, store.WithLauncherRemover(exporter))
	if loadErr != nil {
		errorColor.Fprintf(cmd.ErrOrStderr(), "Error reading map file: %v\n", loadErr)
		logger.Error("Failed to load map file", "error", loadErr)
	}
	return nil
}

func isCompletionRequest(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// writable refuses mutations while the map file is unreadable.
func writable(cmd *cobra.Command) bool {
	if loadErr == nil {
		return true
	}
	errorColor.Fprintf(cmd.ErrOrStderr(), "Refusing to modify the store until %s is fixed.\n", paths.MapFile())
	return false
}

// reportf prints a failure and returns errReported so the process exits non-zero.
func reportf(cmd *cobra.Command, format string, a ...any) error {
	errorColor.Fprintf(cmd.ErrOrStderr(), format+"\n", a...)
	logger.Errorf(format, a...)
	return errReported
}

// warnf prints a handled failure. The command still succeeds.
func warnf(cmd *cobra.Command, format string, a ...any) {
	errorColor.Fprintf(cmd.ErrOrStderr(), format+"\n", a...)
	logger.Warn(fmt.Sprintf(format, a...))
}

// RunCLI executes the root command and exits with status 1 on failure.
func RunCLI() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "data directory (default ~/.pxc, env PXC_ROOT)")
	rootCmd.PersistentFlags().StringVar(&flagBinDir, "bin-dir", "", "launcher directory (default /usr/local/bin, env PXC_BIN_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output to stderr")

	// Flags after the entry name belong to the script, not to pxc.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(interactiveCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory and an empty map file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// setup already created everything that was missing.
		successColor.Fprintf(cmd.OutOrStdout(), "[init] data directory ready: %s\n", paths.Root)
		fmt.Fprintf(cmd.OutOrStdout(), "  map:      %s\n", paths.MapFile())
		fmt.Fprintf(cmd.OutOrStdout(), "  scripts:  %s\n", paths.CmdDir())
		fmt.Fprintf(cmd.OutOrStdout(), "  config:   %s\n", paths.ConfigFile())
		fmt.Fprintf(cmd.OutOrStdout(), "  launchers: %s\n", paths.BinDir)
		return nil
	},
}
