// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pxc/internal/model"
	"pxc/internal/store"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

var flagOutput string

var cellStyle = lipgloss.NewStyle().PaddingRight(2)

var lsCmd = &cobra.Command{
	Use:               "ls [category]",
	Aliases:           []string{"list"},
	Short:             "List commands grouped by category",
	Example:           "  pxc ls\n  pxc ls ops\n  pxc ls -o json",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: categoryCompletionFunc(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := ""
		if len(args) > 0 {
			category = args[0]
		}

		groups := groupEntries(entryStore, category)

		var err error
		switch strings.ToLower(flagOutput) {
		case formatTable, "":
			renderTable(cmd.OutOrStdout(), groups, category == "")
		case formatYAML:
			err = renderYAML(cmd.OutOrStdout(), flatten(groups))
		case formatJSON:
			err = renderJSON(cmd.OutOrStdout(), flatten(groups))
		default:
			return reportf(cmd, "Error: unknown output format '%s' (want table, yaml or json)", flagOutput)
		}
		if err != nil {
			warnf(cmd, "[ls] %v", err)
		}
		return nil
	},
}

var lscCmd = &cobra.Command{
	Use:   "lsc",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderCategories(cmd.OutOrStdout(), entryStore.Categories())
		return nil
	},
}

// groupEntries returns the entries of each category in first-appearance
// order. A non-empty category yields only that group.
func groupEntries(s *store.Store, category string) [][]model.Entry {
	categories := []string{category}
	if category == "" {
		categories = s.Categories()
	}

	groups := make([][]model.Entry, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, s.InCategory(c))
	}
	return groups
}

func flatten(groups [][]model.Entry) []model.Entry {
	out := []model.Entry{}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// renderTable writes the NAME/CATEGORY/FILE table. When separate is set the
// groups are divided by a blank line.
func renderTable(w io.Writer, groups [][]model.Entry, separate bool) {
	var rows [][]string
	for i, g := range groups {
		if separate && i > 0 {
			rows = append(rows, []string{"", "", ""})
		}
		for _, e := range g {
			rows = append(rows, []string{e.Name, e.Category, e.Identifier})
		}
	}
	fmt.Fprintln(w, renderPlainTable([]string{"NAME", "CATEGORY", "FILE"}, rows))
}

func renderCategories(w io.Writer, categories []string) {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c})
	}
	fmt.Fprintln(w, renderPlainTable([]string{"CATEGORIES"}, rows))
}

// renderPlainTable lays out columns sized to their widest cell, two spaces
// apart, under a ruled header. Trailing padding is trimmed from every line.
func renderPlainTable(headers []string, rows [][]string) string {
	last := len(headers) - 1
	tbl := table.New().
		Border(lipgloss.Border{Top: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col < last {
				return cellStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers(headers...).
		Rows(rows...)

	lines := strings.Split(tbl.Render(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func renderYAML(w io.Writer, entries []model.Entry) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}

func renderJSON(w io.Writer, entries []model.Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func init() {
	lsCmd.Flags().StringVarP(&flagOutput, "output", "o", formatTable, "output format: table, yaml or json")
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(lscCmd)
}
