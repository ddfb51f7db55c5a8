// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the phases of the interactive loop.
type state int

const (
	stateSearching state = iota // reading keystrokes
	stateExecute                // terminated with a selection
	stateCancelled              // terminated without action
)

const (
	selectionMarker = "-> "
	rowIndent       = "   "
	exitHint        = "Press Escape to exit"
)
