// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/gridsub/internal/params"
	"github.com/spf13/afero"
)

var (
	// ErrNoExecutable is returned when a grid declares neither a script nor a command.
	ErrNoExecutable = errors.New("grid must declare a script or a command")
	// ErrBadChain is returned when the chain length is less than one.
	ErrBadChain = errors.New("chain must be at least 1")
)

// Spec is the YAML schema for a single grid. Unknown fields are rejected at
// decode time.
type Spec struct {
	// Name overrides the grid's config key as the job-name template.
	Name string `yaml:"name,omitempty"`
	// Script is a path to a batch script handed to the scheduler.
	Script string `yaml:"script,omitempty"`
	// Command is an inline command, wrapped in a heredoc for batch submission.
	// If both Script and Command are set, Command wins.
	Command string `yaml:"command,omitempty"`
	// Env is the name of a conda environment activated before the command.
	Env string `yaml:"env,omitempty"`
	// Params declares the parameter axes, as a mapping or list of mappings.
	Params params.Sets `yaml:"params,omitempty"`
	// Slurm is the scheduler options, as a flat string or a flag mapping.
	Slurm Options `yaml:"slurm,omitempty"`
	// Completion is a path template; if the expanded path exists the job is skipped.
	Completion string `yaml:"completion,omitempty"`
	// Precondition is a path template; if the expanded path is missing the job is skipped.
	Precondition string `yaml:"precondition,omitempty"`
	// Chain is the number of dependent submissions per parameter dictionary.
	Chain int `yaml:"chain,omitempty"`
	// Dependency names grids whose jobs must be submitted before this grid's.
	Dependency StringList `yaml:"dependency,omitempty"`
}

// Grid is a normalized job specification with its parameter combinations
// fully expanded. Key is the grid's config key, used for selection, the
// dependency ledger and cross-grid dependency references; Name is the
// job-name template, which defaults to the key.
type Grid struct {
	Key          string
	Name         string
	Script       string
	Command      string
	Env          string
	Slurm        string
	Completion   string
	Precondition string
	Chain        int
	DependsOn    []string
	Params       []params.Dict
}

// Build normalizes a decoded Spec into a Grid, expanding its parameter sets
// against the given filesystem. The grid's job-name template defaults to the
// config key. A grid without parameters yields a single empty dictionary,
// hence one job.
func Build(fsys afero.Fs, key string, spec *Spec) (*Grid, error) {
	name := spec.Name
	if name == "" {
		name = key
	}

	if spec.Script == "" && spec.Command == "" {
		return nil, fmt.Errorf("grid %q: %w", key, ErrNoExecutable)
	}

	chain := spec.Chain
	if chain == 0 {
		chain = 1
	}

	if chain < 1 {
		return nil, fmt.Errorf("grid %q: %w (got %d)", key, ErrBadChain, spec.Chain)
	}

	dicts, err := params.Expand(fsys, spec.Params)
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", key, err)
	}

	// A grid without parameters is a single job. Declared parameters that
	// expand to nothing (an unmatched glob) genuinely mean zero jobs.
	if len(spec.Params) == 0 {
		dicts = []params.Dict{{}}
	}

	return &Grid{
		Key:          key,
		Name:         name,
		Script:       spec.Script,
		Command:      spec.Command,
		Env:          spec.Env,
		Slurm:        string(spec.Slurm),
		Completion:   spec.Completion,
		Precondition: spec.Precondition,
		Chain:        chain,
		DependsOn:    spec.Dependency,
		Params:       dicts,
	}, nil
}

// JobName renders the grid's name template with one concrete parameter
// dictionary. Distinct dictionaries may render to the same name; the
// orchestrator treats a collision as "already submitted" once the first
// submission succeeds.
func (g *Grid) JobName(d params.Dict) (string, error) {
	return ExpandTemplate(g.Name, d)
}
