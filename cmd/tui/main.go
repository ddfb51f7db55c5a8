// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"pxc/internal/logger"
	"pxc/internal/model"
	"pxc/internal/ui"
)

// ErrNotTerminal is returned when stdin or stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("interactive mode requires a terminal")

// IsTerminal reports whether both stdin and stdout are terminals.
func IsTerminal() bool {
	return isTTY(os.Stdin) && isTTY(os.Stdout)
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RunInteractive runs the incremental search loop over entries and returns
// the selected name. The terminal is restored before it returns.
func RunInteractive(entries []model.Entry) (string, bool, error) {
	if !IsTerminal() {
		return "", false, ErrNotTerminal
	}

	logger.Debug("Starting interactive mode", "entries", len(entries))
	name, ok, err := ui.Run(entries)
	if err != nil {
		logger.Error("Interactive mode failed", "error", err)
		return "", false, err
	}
	logger.Debug("Interactive mode finished", "selected", name, "ok", ok)
	return name, ok, nil
}
