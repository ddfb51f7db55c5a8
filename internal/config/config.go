// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config resolves the data directory layout, reads and writes the
// key;value configuration file, and bootstraps the directories the store
// expects.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pxc/internal/util"
)

const (
	// DefaultEditor is used when the config file does not name one.
	DefaultEditor = "vim"

	// DefaultBinDir is where launchers are exported.
	DefaultBinDir = "/usr/local/bin"

	// LauncherSuffix is appended to an entry name to form its launcher filename.
	LauncherSuffix = ".!"

	envPrefix = "PXC"
	keyRoot   = "root"
	keyBinDir = "bin_dir"
)

// ErrNoHome is returned when neither an explicit root nor a home directory is available.
var ErrNoHome = errors.New("cannot resolve home directory")

// Paths is the filesystem layout, resolved once at startup and immutable afterwards.
type Paths struct {
	// Root is the data directory (default ~/.pxc)
	Root string

	// BinDir is the directory launchers are written to
	BinDir string
}

// MapFile is the persisted store.
func (p Paths) MapFile() string { return filepath.Join(p.Root, "map", "pxc") }

// CmdDir holds one backing script per entry.
func (p Paths) CmdDir() string { return filepath.Join(p.Root, "cmd") }

// ScriptPath is the backing script for an identifier.
func (p Paths) ScriptPath(identifier string) string {
	return filepath.Join(p.CmdDir(), identifier)
}

// ConfigFile is the key;value settings file.
func (p Paths) ConfigFile() string { return filepath.Join(p.Root, "config", "config") }

// LauncherPath is the exported wrapper for an entry name.
func (p Paths) LauncherPath(name string) string {
	return filepath.Join(p.BinDir, name+LauncherSuffix)
}

// NewViper wires the root and bin-dir settings: flags win over PXC_* env
// variables, which win over the defaults.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault(keyBinDir, DefaultBinDir)

	if flags != nil {
		if f := flags.Lookup("root"); f != nil {
			if err := v.BindPFlag(keyRoot, f); err != nil {
				return nil, fmt.Errorf("failed to bind root flag: %w", err)
			}
		}
		if f := flags.Lookup("bin-dir"); f != nil {
			if err := v.BindPFlag(keyBinDir, f); err != nil {
				return nil, fmt.Errorf("failed to bind bin-dir flag: %w", err)
			}
		}
	}
	return v, nil
}

// ResolvePaths computes the layout from v. Without an explicit root the data
// directory is ~/.pxc; an unresolvable home directory is an error rather than
// an empty path.
func ResolvePaths(v *viper.Viper) (Paths, error) {
	root := strings.TrimSpace(v.GetString(keyRoot))
	if root == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil || homeDir == "" {
			return Paths{}, fmt.Errorf("%w: %v", ErrNoHome, err)
		}
		root = filepath.Join(homeDir, ".pxc")
	}

	root, err := ResolvePath(root)
	if err != nil {
		return Paths{}, err
	}
	binDir, err := ResolvePath(v.GetString(keyBinDir))
	if err != nil {
		return Paths{}, err
	}

	return Paths{Root: root, BinDir: binDir}, nil
}

// ResolvePath expands a leading "~/" to the user's home directory.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}

// EnsureLayout creates the data directories and an empty store file when
// missing. It reports whether the store file was created.
func EnsureLayout(p Paths) (bool, error) {
	for _, dir := range []string{p.Root, filepath.Dir(p.MapFile()), p.CmdDir(), filepath.Dir(p.ConfigFile())} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(p.MapFile()); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat map file %s: %w", p.MapFile(), err)
	}

	if err := os.WriteFile(p.MapFile(), nil, 0640); err != nil {
		return false, fmt.Errorf("failed to create map file %s: %w", p.MapFile(), err)
	}
	return true, nil
}

// Config holds user settings.
type Config struct {
	// Editor is the program used to edit backing scripts
	Editor string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Editor: DefaultEditor}
}

// LoadConfig reads the config file. A missing file yields the defaults.
// Lines are "key;value"; unknown keys and lines without a separator are skipped.
func LoadConfig(p Paths) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(p.ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", p.ConfigFile(), err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ";")
		if !ok {
			continue
		}
		switch key {
		case "editor":
			if value = strings.TrimSpace(value); value != "" {
				cfg.Editor = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", p.ConfigFile(), err)
	}
	return cfg, nil
}

// SaveConfig rewrites the config file.
func SaveConfig(p Paths, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(p.ConfigFile()), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	editor := cfg.Editor
	if editor == "" {
		editor = DefaultEditor
	}
	data := []byte(fmt.Sprintf("editor;%s\n", editor))
	if err := util.WriteFileAtomic(p.ConfigFile(), data, 0640); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", p.ConfigFile(), err)
	}
	return nil
}
