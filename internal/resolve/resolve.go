// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package resolve turns a typed token that is not an exact entry name into a
// single entry by asking the user to pick among substring matches.
package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pxc/internal/model"
	"pxc/internal/search"
)

var (
	// ErrNotFound is returned when the token matches no entry.
	ErrNotFound = errors.New("command not found")

	// ErrInvalidSelection is returned for a non-numeric or out-of-range choice.
	ErrInvalidSelection = errors.New("invalid option")
)

// Resolver prompts on Out and reads the answer from In.
type Resolver struct {
	In  io.Reader
	Out io.Writer
}

// Resolve returns the entry name token refers to. An exact name wins without
// prompting. A single substring match is confirmed with an empty line (or
// "1"); several matches are listed in store order and chosen by 1-based index.
func (r Resolver) Resolve(entries []model.Entry, token string) (string, error) {
	for _, e := range entries {
		if e.Name == token {
			return token, nil
		}
	}

	matches := search.Filter(entries, token)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, token)
	}

	if len(matches) > 1 {
		fmt.Fprintln(r.Out, "Did you mean one of:")
	}
	for i, name := range matches {
		fmt.Fprintf(r.Out, "%d. ->%s\n", i+1, name)
	}
	if len(matches) > 1 {
		fmt.Fprintln(r.Out, "select: ")
	} else {
		fmt.Fprintf(r.Out, "Press Enter to run %s\n", matches[0])
	}

	answer, err := bufio.NewReader(r.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("%w: no answer: %w", ErrInvalidSelection, err)
	}
	return pick(matches, strings.TrimSpace(answer))
}

func pick(matches []string, answer string) (string, error) {
	if answer == "" {
		if len(matches) == 1 {
			return matches[0], nil
		}
		return "", fmt.Errorf("%w: empty selection", ErrInvalidSelection)
	}

	idx, err := strconv.Atoi(answer)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidSelection, answer)
	}
	if idx < 1 || idx > len(matches) {
		return "", fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, idx, len(matches))
	}
	return matches[idx-1], nil
}
