// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	appName       = "pxc"
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Until InitLogger runs, records are dropped. Packages used from tests log
// freely without touching the user's state directory.
var defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// getLogFilePath determines the path for the application log file based on XDG spec.
func getLogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, appName, "app.log"), nil
}

// setupLogging builds a JSON logger writing to a rotating file and/or stderr.
func setupLogging(logToFile bool, logToStderr bool, level slog.Level) (*slog.Logger, error) {
	var writers []io.Writer

	if logToFile {
		logFilePath, err := getLogFilePath()
		if err != nil {
			return nil, fmt.Errorf("error determining log file path: %w", err)
		}
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("error creating log directory %s: %w", logDir, err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		})
	}

	if logToStderr {
		writers = append(writers, os.Stderr)
	}

	var finalWriter io.Writer
	switch len(writers) {
	case 0:
		finalWriter = io.Discard
	case 1:
		finalWriter = writers[0]
	default:
		finalWriter = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(finalWriter, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// InitLogger configures the default logger. The interactive loop owns the
// terminal, so stderr mirroring is only enabled for verbose CLI runs.
func InitLogger(interactive bool, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logToStderr := verbose && !interactive

	l, err := setupLogging(true, logToStderr, level)
	if err != nil {
		// File logging is optional; keep going with whatever stderr allows.
		fmt.Fprintf(os.Stderr, "Logger initialization failed: %v. File logging disabled.\n", err)
		l, _ = setupLogging(false, logToStderr, level)
	}
	defaultLogger = l
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}
