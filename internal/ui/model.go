// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pxc/internal/model"
)

// Model adapts Loop to Bubble Tea.
type Model struct {
	loop   *Loop
	keymap KeyMap
	notice string
	width  int
	height int
}

// NewModel builds the interactive model over entries.
func NewModel(entries []model.Entry) *Model {
	return &Model{loop: NewLoop(entries), keymap: DefaultKeyMap}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, m.keymap.Cancel):
			m.loop.Cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Confirm):
			if m.loop.Confirm() {
				return m, tea.Quit
			}
			m.notice = fmt.Sprintf("no match for '%s'", m.loop.Query())
		case key.Matches(msg, m.keymap.Erase):
			m.loop.Erase()
		case msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace:
			for _, r := range msg.Runes {
				m.loop.Type(r)
			}
		}
	}
	return m, nil
}

// View implements tea.Model. A terminated loop renders nothing so the
// screen is clean before the selected command takes over the terminal.
func (m *Model) View() string {
	if m.loop.Done() {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pxc"))
	b.WriteString("\n\n")
	b.WriteString(queryStyle.Render(fmt.Sprintf("search: '%s'", m.loop.Query())))
	b.WriteString("\n")

	rows := m.loop.Rows()
	limit := len(rows)
	// Title, blank line, query line and footer take four rows.
	if m.height > 0 && limit > m.height-5 {
		limit = min(max(m.height-5, 1), len(rows))
	}
	for i, row := range rows[:limit] {
		switch {
		case row == "":
		case i == 0:
			row = selectedStyle.Render(row)
		default:
			row = matchStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("  ")
	}
	confirm := m.keymap.Confirm.Help()
	b.WriteString(footerKeyStyle.Render(confirm.Key))
	b.WriteString(footerStyle.Render(" " + confirm.Desc + " | " + exitHint))
	return b.String()
}

// Result returns the selected entry name, if the loop ended with one.
func (m *Model) Result() (string, bool) {
	return m.loop.Selected()
}
