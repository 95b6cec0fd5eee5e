// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package submit implements the submit command: it loads a configuration
// document, expands every selected grid and dispatches the resulting jobs to
// the scheduler.
package submit

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/gridsub/internal/config"
	"github.com/matt-FFFFFF/gridsub/internal/ctxlog"
	"github.com/matt-FFFFFF/gridsub/internal/orchestrator"
	"github.com/matt-FFFFFF/gridsub/internal/sched"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	configArg       = "config"
	dryRunFlag      = "dry-run"
	interactiveFlag = "interactive"
	slurmArgFlag    = "slurm-arg"
)

// ErrNoConfig is returned when no configuration path is given.
var ErrNoConfig = errors.New("a configuration file path is required")

// SubmitCmd is the command that submits the grids defined in a YAML file.
var SubmitCmd = &cli.Command{
	Name: "submit",
	Description: `Submit the job grids defined in a YAML configuration file.
Remaining arguments select grids by name; with no selection every grid is
submitted in declaration order.

Config file URLs use Hashicorp's go-getter syntax, which allows for fetching
files from various sources. See https://github.com/hashicorp/go-getter.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name: configArg,
		},
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        dryRunFlag,
			Aliases:     []string{"d"},
			Usage:       "Print the submission commands without dispatching them",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        interactiveFlag,
			Aliases:     []string{"i"},
			Usage:       "Render bare interactive commands instead of scheduler submissions",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringSliceFlag{
			Name:  slurmArgFlag,
			Usage: "Append a scheduler flag to every submission. Specify multiple times for multiple flags.",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	src := cmd.StringArg(configArg)
	if src == "" {
		return cli.Exit(ErrNoConfig.Error(), 1)
	}

	data, err := config.Fetch(ctx, src)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fsys := afero.NewOsFs()

	doc, err := config.Parse(fsys, data)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	slurm, err := sched.NewSlurm()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var gw sched.Gateway = slurm

	dryRun := cmd.Bool(dryRunFlag)
	if dryRun {
		logger.Info("dry run: submissions will be printed, not dispatched")

		gw = &sched.DryRun{Gateway: slurm}
	}

	mode := sched.Batch
	if cmd.Bool(interactiveFlag) {
		mode = sched.Interactive
	}

	o := orchestrator.New(fsys, gw, doc,
		orchestrator.WithMode(mode),
		orchestrator.WithOverrides(cmd.StringSlice(slurmArgFlag)),
		orchestrator.WithReporter(orchestrator.NewReporter(cmd.Writer, cmd.ErrWriter, dryRun)),
	)

	return o.Run(ctx, cmd.Args().Slice())
}
