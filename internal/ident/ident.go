// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ident allocates the short random identifiers that name backing
// script files.
package ident

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"pxc/internal/logger"
)

const (
	// Alphabet is the set of symbols identifiers are drawn from.
	Alphabet = "ABCDEF0123456789"

	// Length is the number of symbols in an identifier.
	Length = 8

	// DefaultMaxAttempts bounds the regenerate-on-collision loop.
	DefaultMaxAttempts = 1024
)

// ErrIdentifierSpaceExhausted is returned when no free identifier was found
// within the attempt limit.
var ErrIdentifierSpaceExhausted = errors.New("identifier space exhausted")

// Generator produces identifiers that are not already taken.
type Generator struct {
	// Rand is the source of random bytes. Defaults to crypto/rand.
	Rand io.Reader

	// MaxAttempts bounds the number of candidates tried. Defaults to DefaultMaxAttempts.
	MaxAttempts int
}

// New returns a Generator backed by crypto/rand.
func New() *Generator {
	return &Generator{Rand: rand.Reader, MaxAttempts: DefaultMaxAttempts}
}

// Generate returns a fresh identifier for which taken reports false.
func (g *Generator) Generate(taken func(id string) bool) (string, error) {
	maxAttempts := g.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := g.candidate()
		if err != nil {
			return "", err
		}
		if taken == nil || !taken(candidate) {
			return candidate, nil
		}
		logger.Debug("identifier already taken, generating again", "identifier", candidate, "attempt", attempt+1)
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIdentifierSpaceExhausted, maxAttempts)
}

// candidate draws Length symbols uniformly from Alphabet. The alphabet has 16
// symbols, so the low nibble of each random byte indexes it without bias.
func (g *Generator) candidate() (string, error) {
	src := g.Rand
	if src == nil {
		src = rand.Reader
	}

	buf := make([]byte, Length)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)&0x0f]
	}
	return string(buf), nil
}
