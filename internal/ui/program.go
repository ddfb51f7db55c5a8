// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"pxc/internal/model"
)

// Run drives the interactive loop on the terminal and returns the selected
// entry name. Bubble Tea puts the terminal in raw mode for the duration of
// Run and restores it on every exit path, so the caller may start the
// selected command as soon as Run returns.
func Run(entries []model.Entry, opts ...tea.ProgramOption) (string, bool, error) {
	m := NewModel(entries)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	if _, err := p.Run(); err != nil {
		return "", false, fmt.Errorf("interactive mode failed: %w", err)
	}
	name, ok := m.Result()
	return name, ok, nil
}
