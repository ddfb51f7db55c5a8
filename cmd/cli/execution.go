// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pxc/internal/logger"
	"pxc/internal/resolve"
	"pxc/internal/runner"
)

// runImplicit runs token as an entry name, falling back to resolving it as a
// fragment. Only "not found" fails the process; every other problem is
// reported and the command succeeds.
func runImplicit(cmd *cobra.Command, token string, args string) error {
	resolver := resolve.Resolver{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	name, err := resolver.Resolve(entryStore.Entries(), token)
	switch {
	case errors.Is(err, resolve.ErrNotFound):
		return reportf(cmd, "Command not found")
	case err != nil:
		warnf(cmd, "%v", err)
		return nil
	}

	runEntry(cmd, name, args)
	return nil
}

// runEntry executes the named entry's script with args and reports how it ended.
func runEntry(cmd *cobra.Command, name string, args string) {
	entry, ok := entryStore.Find(name)
	if !ok {
		warnf(cmd, "Command '%s' not found", name)
		return
	}

	out := cmd.OutOrStdout()
	statusColor.Fprintf(out, "Running command '%s' with identifier: %s\n", name, identifierColor.Sprint(entry.Identifier))
	if args != "" {
		dimColor.Fprintf(out, "Command arguments: %s\n", args)
	}

	err := cmdRunner.Run(entryStore.ScriptPath(entry), args)
	var exitErr *runner.ExitError
	switch {
	case err == nil:
		logger.Info("Command finished", "name", name)
	case errors.As(err, &exitErr):
		warnf(cmd, "Command execution failed with status: %s", exitStatus(exitErr))
	default:
		warnf(cmd, "Failed to run command: %v", err)
	}
}

func exitStatus(e *runner.ExitError) string {
	if e.Code >= 0 {
		return fmt.Sprintf("%d", e.Code)
	}
	return e.Err.Error()
}
