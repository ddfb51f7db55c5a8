// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"pxc/internal/config"
	"pxc/internal/store"
)

// completionStore loads the store read-only for shell completion, which skips
// setup. Any failure yields no suggestions.
func completionStore(cmd *cobra.Command) *store.Store {
	if entryStore != nil {
		return entryStore
	}
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return nil
	}
	p, err := config.ResolvePaths(v)
	if err != nil {
		return nil
	}
	s, err := store.Open(p)
	if err != nil {
		return nil
	}
	return s
}

// completionNames returns the entry names starting with toComplete.
func completionNames(cmd *cobra.Command, toComplete string) []string {
	s := completionStore(cmd)
	if s == nil {
		return nil
	}
	var suggestions []string
	for _, e := range s.Entries() {
		if strings.HasPrefix(e.Name, toComplete) {
			suggestions = append(suggestions, e.Name)
		}
	}
	return suggestions
}

func completionCategories(cmd *cobra.Command, toComplete string) []string {
	s := completionStore(cmd)
	if s == nil {
		return nil
	}
	var suggestions []string
	for _, c := range s.Categories() {
		if strings.HasPrefix(c, toComplete) {
			suggestions = append(suggestions, c)
		}
	}
	return suggestions
}

// entryCompletionFunc completes the first positional argument with entry names.
func entryCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		// Arguments after the name belong to the script.
		return nil, cobra.ShellCompDirectiveDefault
	}
	return completionNames(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// categoryCompletionFunc completes the positional argument at index pos with
// existing categories.
func categoryCompletionFunc(pos int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != pos {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completionCategories(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// entryThenCategoryCompletionFunc completes "<name> [category]".
func entryThenCategoryCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completionNames(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return completionCategories(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
