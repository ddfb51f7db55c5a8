// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the interactive loop.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the interactive loop. Every other
// printable key edits the query.
type KeyMap struct {
	Confirm key.Binding // Run the highlighted match
	Erase   key.Binding // Delete the last query character
	Cancel  key.Binding // Leave without running anything
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Erase: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "erase"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "exit"),
	),
}
