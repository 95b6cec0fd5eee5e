// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sched

import (
	"testing"

	"github.com/matt-FFFFFF/gridsub/internal/grid"
	"github.com/matt-FFFFFF/gridsub/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatArgumentOrdering(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Command: "python", Chain: 1}
	d := params.Dict{
		{Key: "--verbose", Value: nil},
		{Key: "--epochs", Value: 10},
		{Key: "$1", Value: "train.py"},
	}

	got, err := Format(g, d, "g", "", Interactive, nil)
	require.NoError(t, err)

	// Positional arguments first, then flags sorted by name, value-less
	// flag emitted bare.
	assert.Equal(t, `python train.py --epochs "10" --verbose`, got)
}

func TestFormatVariablesPrecedeInvocation(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Command: "python train.py", Chain: 1}
	d := params.Dict{
		{Key: "lr", Value: 0.1},
		{Key: "seed", Value: 7},
	}

	got, err := Format(g, d, "g", "", Interactive, nil)
	require.NoError(t, err)
	assert.Equal(t, `lr="0.1" seed="7" python train.py`, got)
}

func TestFormatNilVariableRendersEmpty(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Command: "run", Chain: 1}
	d := params.Dict{{Key: "opt", Value: nil}}

	got, err := Format(g, d, "g", "", Interactive, nil)
	require.NoError(t, err)
	assert.Equal(t, `opt="" run`, got)
}

func TestFormatInteractiveScript(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Script: "run.sh", Chain: 1}

	got, err := Format(g, params.Dict{}, "g", "", Interactive, nil)
	require.NoError(t, err)
	assert.Equal(t, "bash -l run.sh", got)
}

func TestFormatBatchScript(t *testing.T) {
	g := &grid.Grid{
		Key:    "g",
		Name:   "g",
		Script: "run.sh",
		Slurm:  `--mem=4G -p gpu`,
		Chain:  1,
	}

	got, err := Format(g, params.Dict{}, "exp-1", "afterok:101:102", Batch, nil)
	require.NoError(t, err)
	assert.Equal(t, "sbatch --mem=4G -p gpu --dependency=afterok:101:102 -J exp-1 run.sh", got)
}

func TestFormatBatchHeredocCommand(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Command: "python train.py", Chain: 1}

	got, err := Format(g, params.Dict{}, "g", "", Batch, nil)
	require.NoError(t, err)
	assert.Equal(t, "sbatch -J g <<EOF\n#!/bin/bash -l\npython train.py \nEOF", got)
}

func TestFormatEnvActivation(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Command: "python", Env: "ml", Chain: 1}

	got, err := Format(g, params.Dict{}, "g", "", Interactive, nil)
	require.NoError(t, err)
	assert.Equal(t, "source ~/.bashrc && conda activate ml && python", got)
}

func TestFormatOverridesAfterJobName(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Script: "run.sh", Chain: 1}

	got, err := Format(g, params.Dict{}, "g", "", Batch, []string{"--qos=high"})
	require.NoError(t, err)
	assert.Equal(t, "sbatch -J g --qos=high run.sh", got)
}

func TestFormatQuotedSlurmOptions(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Script: "run.sh", Slurm: `--comment="two words"`, Chain: 1}

	got, err := Format(g, params.Dict{}, "g", "", Batch, nil)
	require.NoError(t, err)

	// The quoted value must survive tokenizing as a single shell word.
	assert.Equal(t, `sbatch "--comment=two words" -J g run.sh`, got)
}

func TestFormatBadSlurmOptions(t *testing.T) {
	g := &grid.Grid{Key: "g", Name: "g", Script: "run.sh", Slurm: `--comment="unterminated`, Chain: 1}

	_, err := Format(g, params.Dict{}, "g", "", Batch, nil)
	assert.Error(t, err)
}
