// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

var (
	// ErrBadDescriptor is returned when a special parameter descriptor declares
	// more than one value source.
	ErrBadDescriptor = errors.New("special parameter must declare at most one of glob or range")
	// ErrBadRange is returned when a range descriptor is malformed.
	ErrBadRange = errors.New("invalid range descriptor")
	// ErrBadGlob is returned when a glob pattern cannot be expanded.
	ErrBadGlob = errors.New("invalid glob pattern")
)

// Special is a generator descriptor producing a parameter axis from either a
// filesystem glob or an integer range. At most one source may be set; a
// descriptor with neither source yields no values.
type Special struct {
	// Glob is a filesystem glob pattern, optionally rooted at RootDir.
	Glob string `yaml:"glob,omitempty"`
	// RootDir anchors the glob; matched paths are reported relative to it.
	RootDir string `yaml:"root_dir,omitempty"`
	// Range is [stop], [start, stop] or [start, stop, step], half-open.
	Range []int `yaml:"range,omitempty"`
}

// Validate checks the descriptor shape without touching the filesystem.
func (s *Special) Validate() error {
	if s.Glob != "" && len(s.Range) > 0 {
		return ErrBadDescriptor
	}

	if len(s.Range) > 3 {
		return fmt.Errorf("%w: expected at most 3 elements, got %d", ErrBadRange, len(s.Range))
	}

	if len(s.Range) == 3 && s.Range[2] == 0 {
		return fmt.Errorf("%w: step must not be zero", ErrBadRange)
	}

	return nil
}

// Materialize evaluates the descriptor once and returns the produced values.
// Glob results follow the filesystem's enumeration order and are neither
// deduplicated nor sorted further; range results follow numeric order.
func (s *Special) Materialize(fsys afero.Fs) ([]Value, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if s.Glob != "" {
		return s.globValues(fsys)
	}

	if len(s.Range) > 0 {
		return s.rangeValues(), nil
	}

	return nil, nil
}

func (s *Special) globValues(fsys afero.Fs) ([]Value, error) {
	pattern, err := homedir.Expand(s.Glob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGlob, err)
	}

	root := ""

	if s.RootDir != "" {
		root, err = homedir.Expand(s.RootDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadGlob, err)
		}

		pattern = filepath.Join(root, pattern)
	}

	matches, err := afero.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGlob, err)
	}

	values := make([]Value, 0, len(matches))

	for _, m := range matches {
		if root != "" {
			// Report matches relative to the root directory.
			if rel, relErr := filepath.Rel(root, m); relErr == nil && !strings.HasPrefix(rel, "..") {
				m = rel
			}
		}

		values = append(values, m)
	}

	return values, nil
}

func (s *Special) rangeValues() []Value {
	start, stop, step := 0, 0, 1

	switch len(s.Range) {
	case 1:
		stop = s.Range[0]
	case 2:
		start, stop = s.Range[0], s.Range[1]
	default:
		start, stop, step = s.Range[0], s.Range[1], s.Range[2]
	}

	var values []Value

	if step > 0 {
		for i := start; i < stop; i += step {
			values = append(values, i)
		}

		return values
	}

	for i := start; i > stop; i += step {
		values = append(values, i)
	}

	return values
}
