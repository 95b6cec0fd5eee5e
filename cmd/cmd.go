// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/gridsub/cmd/show"
	"github.com/matt-FFFFFF/gridsub/cmd/submit"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		submit.SubmitCmd,
		show.ShowCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "gridsub",
	Description: `Gridsub expands declarative job-grid specifications into batch-scheduler
submissions. A YAML document declares named grids: a command or script, parameter
axes (scalars, lists, globs or ranges), scheduler options and submission policy.
Gridsub expands every parameter combination, skips jobs that are already queued,
already completed or missing a precondition, and submits the rest in order with
chain and cross-grid dependencies.`,
	Usage:     "gridsub submit runs.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
