// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show implements the show command: a read-only rehearsal of a
// configuration that prints the rendered submission commands without
// querying the scheduler or dispatching anything.
package show

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/gridsub/internal/config"
	"github.com/matt-FFFFFF/gridsub/internal/orchestrator"
	"github.com/matt-FFFFFF/gridsub/internal/sched"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const configArg = "config"

// ErrNoConfig is returned when no configuration path is given.
var ErrNoConfig = errors.New("a configuration file path is required")

// ShowCmd is the command that shows the expanded submission plan for a
// configuration file.
var ShowCmd = &cli.Command{
	Name: "show",
	Description: `Show the submission plan for a YAML configuration file.
Every selected grid is expanded and its submission commands rendered exactly as
submit would dispatch them, but nothing is sent to the scheduler and the live
queue is not consulted.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name: configArg,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
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

	o := orchestrator.New(fsys, &sched.DryRun{Gateway: &sched.Static{}}, doc,
		orchestrator.WithReporter(orchestrator.NewReporter(cmd.Writer, cmd.ErrWriter, true)),
	)

	return o.Run(ctx, cmd.Args().Slice())
}
