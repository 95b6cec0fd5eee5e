// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sched

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"
	"github.com/matt-FFFFFF/gridsub/internal/grid"
	"github.com/matt-FFFFFF/gridsub/internal/params"
)

// Mode selects the invocation style produced by Format.
type Mode int

const (
	// Batch produces a scheduler submission with directives.
	Batch Mode = iota
	// Interactive produces the bare command with variable assignments.
	Interactive
)

const (
	submitVerb     = "sbatch"
	jobNameFlag    = "-J"
	dependencyFlag = "--dependency="
	heredocOpen    = "<<EOF\n#!/bin/bash -l\n"
	heredocClose   = "\nEOF"
)

// Format renders the exact invocation for one job. Variables are emitted as
// quoted shell assignments in the parameter dictionary's insertion order;
// arguments follow the invocation with positional ("$") arguments before
// flag ("-") arguments, each group sorted by name. A flag with a nil value
// is emitted bare. In Batch mode the invocation is the scheduler submit verb
// with the grid's option tokens, the dependency expression when non-empty, a
// job-name directive, any override tokens, and the script or heredoc-wrapped
// inline command. Format is pure: it never touches the filesystem or
// network.
func Format(g *grid.Grid, d params.Dict, jobName, depExpr string, mode Mode, overrides []string) (string, error) {
	var parts []string

	if g.Env != "" {
		parts = append(parts, fmt.Sprintf("source ~/.bashrc && conda activate %s &&", g.Env))
	}

	variables, arguments := params.Split(d)

	for _, p := range variables {
		parts = append(parts, fmt.Sprintf("%s=%q", p.Key, params.Render(p.Value)))
	}

	switch mode {
	case Interactive:
		if g.Command != "" {
			parts = append(parts, g.Command)
			break
		}

		parts = append(parts, "bash -l "+g.Script)
	default:
		parts = append(parts, submitVerb)

		if g.Slurm != "" {
			tokens, err := shlex.Split(g.Slurm)
			if err != nil {
				return "", fmt.Errorf("invalid scheduler options %q: %w", g.Slurm, err)
			}

			for _, tok := range tokens {
				// Tokens that carried quotes through shlex must be
				// re-quoted to stay single shell words.
				if strings.ContainsAny(tok, " \t") {
					tok = fmt.Sprintf("%q", tok)
				}

				parts = append(parts, tok)
			}
		}

		if depExpr != "" {
			parts = append(parts, dependencyFlag+depExpr)
		}

		parts = append(parts, jobNameFlag, jobName)
		parts = append(parts, overrides...)

		if g.Command != "" {
			parts = append(parts, heredocOpen+g.Command)
			break
		}

		parts = append(parts, g.Script)
	}

	parts = append(parts, formatArguments(arguments)...)

	if mode == Batch && g.Command != "" {
		parts = append(parts, heredocClose)
	}

	return strings.Join(parts, " "), nil
}

// formatArguments orders and renders command-line arguments: positional
// arguments first, then flags, each group sorted by argument name.
func formatArguments(arguments params.Dict) []string {
	sorted := make(params.Dict, len(arguments))
	copy(sorted, arguments)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i], sorted[j]

		posI := strings.HasPrefix(pi.Key, "$")
		posJ := strings.HasPrefix(pj.Key, "$")

		if posI != posJ {
			return posI
		}

		return pi.Key < pj.Key
	})

	var parts []string

	for _, p := range sorted {
		switch {
		case strings.HasPrefix(p.Key, "$"):
			parts = append(parts, params.Render(p.Value))
		case p.Value == nil:
			parts = append(parts, p.Key)
		default:
			parts = append(parts, p.Key, fmt.Sprintf("%q", params.Render(p.Value)))
		}
	}

	return parts
}
