// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package model holds the types shared between the store, the search index
// and the user-facing layers.
package model

// DefaultCategory is assigned to entries added without a category.
const DefaultCategory = "default"

// Entry is a named, categorized reference to a backing script.
type Entry struct {
	// Name is the unique, user-chosen name of the command
	Name string `yaml:"name" json:"name"`

	// Category groups entries in listings
	Category string `yaml:"category" json:"category"`

	// Identifier is the unique token naming the backing script file
	Identifier string `yaml:"identifier" json:"identifier"`
}

// NormalizeCategory returns category, or DefaultCategory when it is empty.
func NormalizeCategory(category string) string {
	if category == "" {
		return DefaultCategory
	}
	return category
}
