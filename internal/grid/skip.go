// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"

	"github.com/matt-FFFFFF/gridsub/internal/params"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// Outcome is the result of evaluating the skip policy for one parameter
// dictionary.
type Outcome int

const (
	// Proceed means the job should be submitted.
	Proceed Outcome = iota
	// SkipAlreadyActive means a job with the same name is queued or running.
	SkipAlreadyActive
	// SkipPrecondition means the declared precondition path does not exist.
	SkipPrecondition
	// SkipCompletion means the declared completion marker already exists.
	SkipCompletion
)

// String returns the human-readable reason for the outcome.
func (o Outcome) String() string {
	switch o {
	case SkipAlreadyActive:
		return "job already active"
	case SkipPrecondition:
		return "missing precondition"
	case SkipCompletion:
		return "already completed"
	default:
		return "proceed"
	}
}

// Decision is a skip-policy outcome plus the job name it applies to and, for
// path-based outcomes, the path that decided it.
type Decision struct {
	Outcome Outcome
	JobName string
	Detail  string
}

// Reason returns the report string for a non-proceed decision.
func (d Decision) Reason() string {
	if d.Detail == "" {
		return d.Outcome.String()
	}

	return fmt.Sprintf("%s (%s)", d.Outcome, d.Detail)
}

// EvaluateSkip applies the skip policy to one parameter dictionary.
// Evaluation order is fixed and first-match-wins: the active-job check runs
// before the precondition check, which runs before the completion check.
// Path templates are substituted with the parameter dictionary and expanded
// for the user's home directory before the existence test.
func (g *Grid) EvaluateSkip(fsys afero.Fs, d params.Dict, isActive func(jobName string) bool) (Decision, error) {
	name, err := g.JobName(d)
	if err != nil {
		return Decision{}, err
	}

	if isActive != nil && isActive(name) {
		return Decision{Outcome: SkipAlreadyActive, JobName: name}, nil
	}

	if g.Precondition != "" {
		path, err := expandPath(g.Precondition, d)
		if err != nil {
			return Decision{}, err
		}

		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return Decision{}, fmt.Errorf("checking precondition %q: %w", path, err)
		}

		if !exists {
			return Decision{Outcome: SkipPrecondition, JobName: name, Detail: path}, nil
		}
	}

	if g.Completion != "" {
		path, err := expandPath(g.Completion, d)
		if err != nil {
			return Decision{}, err
		}

		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return Decision{}, fmt.Errorf("checking completion marker %q: %w", path, err)
		}

		if exists {
			return Decision{Outcome: SkipCompletion, JobName: name, Detail: path}, nil
		}
	}

	return Decision{Outcome: Proceed, JobName: name}, nil
}

func expandPath(tmpl string, d params.Dict) (string, error) {
	path, err := ExpandTemplate(tmpl, d)
	if err != nil {
		return "", err
	}

	return homedir.Expand(path)
}
