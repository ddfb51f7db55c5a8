// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package search implements the substring filter shared by the interactive
// loop and the ambiguous-match resolver.
package search

import (
	"slices"
	"strings"

	"pxc/internal/model"
)

// Filter returns the names of all entries containing query as a contiguous,
// case-sensitive substring, in entry order. An empty query matches every entry.
func Filter(entries []model.Entry, query string) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e.Name, query) {
			names = append(names, e.Name)
		}
	}
	return names
}

// ByLength returns a copy of names sorted by ascending length. Names of equal
// length keep their relative order.
func ByLength(names []string) []string {
	sorted := slices.Clone(names)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return len(a) - len(b)
	})
	return sorted
}

// Ranked is Filter followed by ByLength: shortest match first.
func Ranked(entries []model.Entry, query string) []string {
	return ByLength(Filter(entries, query))
}
