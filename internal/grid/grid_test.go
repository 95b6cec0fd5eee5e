// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grid

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGrid(t *testing.T, key, src string) *Grid {
	t.Helper()

	spec := new(Spec)
	require.NoError(t, yaml.UnmarshalWithOptions([]byte(src), spec, yaml.Strict()))

	g, err := Build(afero.NewMemMapFs(), key, spec)
	require.NoError(t, err)

	return g
}

func TestBuildDefaults(t *testing.T) {
	g := buildGrid(t, "train", "script: run.sh\n")

	assert.Equal(t, "train", g.Name)
	assert.Equal(t, 1, g.Chain)
	require.Len(t, g.Params, 1)
	assert.Empty(t, g.Params[0], "a grid without parameters expands to one empty dictionary")
}

func TestBuildNameOverride(t *testing.T) {
	g := buildGrid(t, "train", "script: run.sh\nname: train-{seed}\nparams:\n  seed: [1, 2]\n")

	assert.Equal(t, "train-{seed}", g.Name)
	assert.Len(t, g.Params, 2)
}

func TestBuildUnmatchedGlobYieldsNoJobs(t *testing.T) {
	g := buildGrid(t, "g", "script: run.sh\nparams:\n  input:\n    glob: 'missing/*.csv'\n")

	assert.Empty(t, g.Params)
}

func TestBuildRequiresExecutable(t *testing.T) {
	spec := new(Spec)
	require.NoError(t, yaml.Unmarshal([]byte("env: myenv\n"), spec))

	_, err := Build(afero.NewMemMapFs(), "g", spec)
	assert.ErrorIs(t, err, ErrNoExecutable)
}

func TestBuildRejectsNegativeChain(t *testing.T) {
	spec := new(Spec)
	require.NoError(t, yaml.Unmarshal([]byte("script: run.sh\nchain: -1\n"), spec))

	_, err := Build(afero.NewMemMapFs(), "g", spec)
	assert.ErrorIs(t, err, ErrBadChain)
}

func TestBuildRejectsUnknownField(t *testing.T) {
	spec := new(Spec)
	err := yaml.UnmarshalWithOptions([]byte("script: run.sh\nscripts: typo.sh\n"), spec, yaml.Strict())
	assert.Error(t, err)
}

func TestSlurmOptionsNormalization(t *testing.T) {
	t.Run("flat string used verbatim", func(t *testing.T) {
		g := buildGrid(t, "g", "script: run.sh\nslurm: \"--mem=4G -p gpu\"\n")
		assert.Equal(t, "--mem=4G -p gpu", g.Slurm)
	})

	t.Run("mapping normalized in declaration order", func(t *testing.T) {
		g := buildGrid(t, "g", `
script: run.sh
slurm:
  --mem: 4G
  -p: gpu
  --time: "01:00:00"
`)
		assert.Equal(t, "--mem=4G -p gpu --time=01:00:00", g.Slurm)
	})
}

func TestDependencyList(t *testing.T) {
	t.Run("single string", func(t *testing.T) {
		g := buildGrid(t, "g", "script: run.sh\ndependency: prep\n")
		assert.Equal(t, []string{"prep"}, g.DependsOn)
	})

	t.Run("sequence", func(t *testing.T) {
		g := buildGrid(t, "g", "script: run.sh\ndependency: [prep, stage]\n")
		assert.Equal(t, []string{"prep", "stage"}, g.DependsOn)
	})
}

func TestJobName(t *testing.T) {
	g := buildGrid(t, "exp-{seed}", "script: run.sh\nparams:\n  seed: [3]\n")

	name, err := g.JobName(g.Params[0])
	require.NoError(t, err)
	assert.Equal(t, "exp-3", name)
}
