// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package launcher exports entries as small shell wrappers in a bin directory
// so they can be run without going through pxc.
package launcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"pxc/internal/config"
	"pxc/internal/logger"
	"pxc/internal/util"
)

// Launcher writes and removes exported wrappers.
type Launcher struct {
	paths config.Paths
}

// New returns a Launcher writing into paths.BinDir.
func New(paths config.Paths) *Launcher {
	return &Launcher{paths: paths}
}

// Script is the wrapper content for a backing script.
func Script(scriptPath string) string {
	return fmt.Sprintf("exec %s \"$@\"\n", util.QuoteArgForShell(scriptPath))
}

// Export writes the launcher for name, pointing at scriptPath, and makes it
// executable for everyone. It returns the launcher path.
func (l *Launcher) Export(name, scriptPath string) (string, error) {
	path := l.paths.LauncherPath(name)
	if err := os.WriteFile(path, []byte(Script(scriptPath)), 0777); err != nil {
		return "", fmt.Errorf("failed to write launcher %s: %w", path, err)
	}
	// WriteFile leaves the mode of an existing file, and umask trims new ones.
	if err := os.Chmod(path, 0777); err != nil {
		return "", fmt.Errorf("failed to set permissions on launcher %s: %w", path, err)
	}
	logger.Info("Exported launcher", "name", name, "path", path)
	return path, nil
}

// Remove deletes the launcher for name. A missing launcher is not an error.
func (l *Launcher) Remove(name string) error {
	path := l.paths.LauncherPath(name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to remove launcher %s: %w", path, err)
	}
	logger.Info("Removed launcher", "name", name, "path", path)
	return nil
}
