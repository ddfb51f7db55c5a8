// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package store owns the set of command entries. It enforces unique names and
// identifiers, pairs every entry with its backing script file, and rewrites
// the persisted map file in full after every mutation.
package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"pxc/internal/config"
	"pxc/internal/ident"
	"pxc/internal/logger"
	"pxc/internal/model"
	"pxc/internal/search"
	"pxc/internal/util"
)

const fieldSeparator = ";"

var (
	// ErrNotFound is returned when no entry has the requested name.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateName is returned when adding a name that already exists.
	ErrDuplicateName = errors.New("entry name already exists")

	// ErrMalformed is returned when the persisted map cannot be parsed.
	ErrMalformed = errors.New("malformed map file")

	// ErrIO wraps filesystem failures (script create/delete, map write).
	ErrIO = errors.New("i/o failure")

	// ErrInvalidName is returned for names or categories the map file cannot
	// hold, and for names that cannot be a launcher filename.
	ErrInvalidName = errors.New("invalid name")
)

// Characters that would split a map line. Names additionally may not contain
// a path separator since they become launcher filenames.
const (
	reservedChars     = fieldSeparator + "\n\r"
	reservedNameChars = reservedChars + "/"
)

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, reservedNameChars) {
		return fmt.Errorf("%w: %q must not contain ';', '/' or a line break", ErrInvalidName, name)
	}
	return nil
}

func validateCategory(category string) error {
	if strings.ContainsAny(category, reservedChars) {
		return fmt.Errorf("%w: category %q must not contain ';' or a line break", ErrInvalidName, category)
	}
	return nil
}

// LauncherRemover deletes an exported launcher. Missing launchers are not an error.
type LauncherRemover interface {
	Remove(name string) error
}

// Option configures a Store.
type Option func(*Store)

// WithGenerator replaces the identifier generator.
func WithGenerator(g *ident.Generator) Option {
	return func(s *Store) { s.gen = g }
}

// WithLauncherRemover sets the collaborator used to delete launchers on Remove.
func WithLauncherRemover(l LauncherRemover) Option {
	return func(s *Store) { s.launchers = l }
}

// Store is the ordered collection of entries. It is not safe for concurrent use.
type Store struct {
	paths     config.Paths
	entries   []model.Entry
	gen       *ident.Generator
	launchers LauncherRemover
}

// New returns an empty store rooted at paths.
func New(paths config.Paths, opts ...Option) *Store {
	s := &Store{paths: paths, gen: ident.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a store populated from the map file. On a load error the
// returned store is empty and usable; the caller decides how to report it.
func Open(paths config.Paths, opts ...Option) (*Store, error) {
	s := New(paths, opts...)
	return s, s.Load()
}

// Load replaces the in-memory entries with the content of the map file.
// A missing file is an empty store. Any malformed line fails the whole load
// and leaves the store empty.
func (s *Store) Load() error {
	s.entries = nil

	data, err := os.ReadFile(s.paths.MapFile())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: read map file %s: %w", ErrIO, s.paths.MapFile(), err)
	}

	entries, err := parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", s.paths.MapFile(), err)
	}
	s.entries = entries
	logger.Debug("Loaded map file", "path", s.paths.MapFile(), "entries", len(entries))
	return nil
}

func parse(data []byte) ([]model.Entry, error) {
	var entries []model.Entry
	names := make(map[string]int)
	ids := make(map[string]int)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 fields, got %d", ErrMalformed, lineNo, len(fields))
		}
		e := model.Entry{Name: fields[0], Category: fields[1], Identifier: fields[2]}
		if e.Name == "" || e.Identifier == "" {
			return nil, fmt.Errorf("%w: line %d: empty name or identifier", ErrMalformed, lineNo)
		}
		e.Category = model.NormalizeCategory(e.Category)

		if prev, ok := names[e.Name]; ok {
			return nil, fmt.Errorf("%w: line %d: name %q already defined on line %d", ErrMalformed, lineNo, e.Name, prev)
		}
		if prev, ok := ids[e.Identifier]; ok {
			return nil, fmt.Errorf("%w: line %d: identifier %s already used on line %d", ErrMalformed, lineNo, e.Identifier, prev)
		}
		names[e.Name] = lineNo
		ids[e.Identifier] = lineNo
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return entries, nil
}

// Save rewrites the map file with every entry in order. The write goes
// through a temporary file and a rename, so a failed save leaves the previous
// file intact.
func (s *Store) Save() error {
	var buf bytes.Buffer
	for _, e := range s.entries {
		buf.WriteString(strings.Join([]string{e.Name, e.Category, e.Identifier}, fieldSeparator))
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(s.paths.MapFile()), 0750); err != nil {
		return fmt.Errorf("%w: create map directory: %w", ErrIO, err)
	}
	if err := util.WriteFileAtomic(s.paths.MapFile(), buf.Bytes(), 0); err != nil {
		return fmt.Errorf("%w: save map file %s: %w", ErrIO, s.paths.MapFile(), err)
	}
	logger.Debug("Saved map file", "path", s.paths.MapFile(), "entries", len(s.entries))
	return nil
}

// Add creates an entry with a fresh identifier and an empty executable
// script, appends it and saves. If only the save fails, the entry is kept in
// memory and returned together with the error.
func (s *Store) Add(name, category string) (model.Entry, error) {
	if err := validateName(name); err != nil {
		return model.Entry{}, err
	}
	if err := validateCategory(category); err != nil {
		return model.Entry{}, err
	}
	if _, ok := s.Find(name); ok {
		return model.Entry{}, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	id, err := s.gen.Generate(s.identifierTaken)
	if err != nil {
		return model.Entry{}, err
	}

	entry := model.Entry{Name: name, Category: model.NormalizeCategory(category), Identifier: id}
	if err := s.createScript(id); err != nil {
		return model.Entry{}, err
	}

	s.entries = append(s.entries, entry)
	logger.Info("Added entry", "name", entry.Name, "category", entry.Category, "identifier", entry.Identifier)

	if err := s.Save(); err != nil {
		return entry, err
	}
	return entry, nil
}

// identifierTaken also treats orphaned script files as taken so a new entry
// never adopts a stale script.
func (s *Store) identifierTaken(id string) bool {
	if s.HasIdentifier(id) {
		return true
	}
	_, err := os.Lstat(s.paths.ScriptPath(id))
	return err == nil
}

func (s *Store) createScript(id string) error {
	path := s.paths.ScriptPath(id)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("%w: create script directory: %w", ErrIO, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0777)
	if err != nil {
		return fmt.Errorf("%w: create script %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close script %s: %w", ErrIO, path, err)
	}
	// The umask usually strips group/other bits from OpenFile's mode.
	if err := os.Chmod(path, 0777); err != nil {
		return fmt.Errorf("%w: set permissions on %s: %w", ErrIO, path, err)
	}
	return nil
}

// Remove deletes the entry, its script and its launcher, then saves. A
// missing script or launcher is fine; other cleanup failures are returned
// after the entry has been removed.
func (s *Store) Remove(name string) error {
	idx := s.index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	entry := s.entries[idx]

	var errs []error
	scriptPath := s.paths.ScriptPath(entry.Identifier)
	if err := os.Remove(scriptPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("%w: remove script %s: %w", ErrIO, scriptPath, err))
	}
	if s.launchers != nil {
		if err := s.launchers.Remove(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrIO, err))
		}
	}

	s.entries = slices.Delete(s.entries, idx, idx+1)
	logger.Info("Removed entry", "name", entry.Name, "identifier", entry.Identifier)

	if err := s.Save(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SetCategory moves the named entry to category (empty means the default) and saves.
func (s *Store) SetCategory(name, category string) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	idx := s.index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.entries[idx].Category = model.NormalizeCategory(category)
	return s.Save()
}

// Find returns the entry with the given name.
func (s *Store) Find(name string) (model.Entry, bool) {
	if idx := s.index(name); idx >= 0 {
		return s.entries[idx], true
	}
	return model.Entry{}, false
}

func (s *Store) index(name string) int {
	return slices.IndexFunc(s.entries, func(e model.Entry) bool { return e.Name == name })
}

// HasIdentifier reports whether any entry uses id.
func (s *Store) HasIdentifier(id string) bool {
	return slices.ContainsFunc(s.entries, func(e model.Entry) bool { return e.Identifier == id })
}

// Entries returns a copy of the entries in store order.
func (s *Store) Entries() []model.Entry {
	return slices.Clone(s.entries)
}

// Len is the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Categories returns the distinct categories in order of first appearance.
func (s *Store) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, e := range s.entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	return categories
}

// InCategory returns the entries of one category in store order.
func (s *Store) InCategory(category string) []model.Entry {
	var out []model.Entry
	for _, e := range s.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// ScriptPath is the backing script of e.
func (s *Store) ScriptPath(e model.Entry) string {
	return s.paths.ScriptPath(e.Identifier)
}

// FindBySubstring returns the names containing query, in store order.
func (s *Store) FindBySubstring(query string) []string {
	return search.Filter(s.entries, query)
}
