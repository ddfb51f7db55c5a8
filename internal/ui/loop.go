// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"unicode"

	"pxc/internal/model"
	"pxc/internal/search"
)

// Loop is the incremental-search state machine behind the interactive mode.
// It knows nothing about terminals: callers feed it keystrokes and draw Rows.
type Loop struct {
	entries  []model.Entry
	query    []rune
	matches  []string
	rows     []string
	rendered int
	state    state
	selected string
}

// NewLoop starts a loop over entries with an empty query.
func NewLoop(entries []model.Entry) *Loop {
	l := &Loop{entries: entries}
	l.refresh()
	return l
}

// Type appends a printable character to the query. Control characters are ignored.
func (l *Loop) Type(r rune) {
	if l.Done() || !unicode.IsPrint(r) {
		return
	}
	l.query = append(l.query, r)
	l.refresh()
}

// Erase drops the last character of the query. It is a no-op on an empty query.
func (l *Loop) Erase() {
	if l.Done() {
		return
	}
	if len(l.query) > 0 {
		l.query = l.query[:len(l.query)-1]
	}
	l.refresh()
}

// Confirm selects the shortest match and terminates the loop. With no match
// the loop keeps running and Confirm returns false.
func (l *Loop) Confirm() bool {
	if l.Done() {
		return l.state == stateExecute
	}
	l.refresh()
	if len(l.matches) == 0 {
		return false
	}
	l.selected = l.matches[0]
	l.state = stateExecute
	return true
}

// Cancel terminates the loop without a selection.
func (l *Loop) Cancel() {
	if l.Done() {
		return
	}
	l.state = stateCancelled
}

// Done reports whether the loop reached a terminal state.
func (l *Loop) Done() bool { return l.state != stateSearching }

// Selected returns the chosen entry name once the loop terminated with a selection.
func (l *Loop) Selected() (string, bool) {
	return l.selected, l.state == stateExecute
}

// Query is the current search text.
func (l *Loop) Query() string { return string(l.query) }

// Matches are the current matches, shortest first.
func (l *Loop) Matches() []string { return l.matches }

// Rows is the last rendered frame of result rows.
func (l *Loop) Rows() []string { return l.rows }

// refresh recomputes matches and renders a new frame. The frame is at least
// as tall as the previous one: rows that held a match last time are drawn
// blank, so a shorter list never leaves stale names on screen.
func (l *Loop) refresh() {
	l.matches = search.Ranked(l.entries, string(l.query))

	height := max(len(l.matches), l.rendered)
	rows := make([]string, height)
	for i := range rows {
		switch {
		case i >= len(l.matches):
			rows[i] = ""
		case i == 0:
			rows[i] = selectionMarker + l.matches[i]
		default:
			rows[i] = rowIndent + l.matches[i]
		}
	}
	l.rows = rows
	l.rendered = len(l.matches)
}
