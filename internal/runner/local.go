// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package runner executes backing scripts and launches the editor. Children
// inherit the terminal and run to completion; there is no timeout.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"pxc/internal/logger"
	"pxc/internal/util"
)

// DefaultShell interprets the command line built for a script.
const DefaultShell = "sh"

// ErrDispatch is returned when the child process could not be started.
var ErrDispatch = errors.New("failed to start command")

// ExitError reports a child that ran but exited unsuccessfully.
type ExitError struct {
	Desc string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf("%s exited with status %d", e.Desc, e.Code)
	}
	return fmt.Sprintf("%s failed: %v", e.Desc, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Runner starts child processes with the given standard streams.
type Runner struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandLine is the shell command run for a script: the quoted path followed
// by the raw argument string, which the shell splits and expands.
func CommandLine(scriptPath, args string) string {
	line := util.QuoteArgForShell(scriptPath)
	if args = strings.TrimSpace(args); args != "" {
		line += " " + args
	}
	return line
}

// Run executes scriptPath through "<shell> -c" and blocks until it exits.
func (r *Runner) Run(scriptPath, args string) error {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}
	line := CommandLine(scriptPath, args)
	logger.Info("Running command", "shell", shell, "command", line)
	return r.run(exec.Command(shell, "-c", line), fmt.Sprintf("command '%s'", line))
}

// Edit opens path in editor. The editor setting may carry its own arguments,
// e.g. "code --wait".
func (r *Runner) Edit(editor, path string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return fmt.Errorf("%w: no editor configured", ErrDispatch)
	}
	args := append(fields[1:], path)
	logger.Info("Launching editor", "editor", fields[0], "path", path)
	return r.run(exec.Command(fields[0], args...), fmt.Sprintf("editor '%s'", editor))
}

func (r *Runner) run(cmd *exec.Cmd, cmdDesc string) error {
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDispatch, cmdDesc, err)
	}
	cmdErr := cmd.Wait()
	if cmdErr == nil {
		return nil
	}

	exitCode := -1
	var exitError *exec.ExitError
	if errors.As(cmdErr, &exitError) {
		if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
			exitCode = status.ExitStatus()
		}
	}
	logger.Warn("Command finished unsuccessfully", "command", cmdDesc, "exit_code", exitCode)
	return &ExitError{Desc: cmdDesc, Code: exitCode, Err: cmdErr}
}
