// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/gridsub/internal/config"
	"github.com/matt-FFFFFF/gridsub/internal/sched"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records every submission and hands out sequential job ids
// starting at 101.
type fakeGateway struct {
	active  map[string]struct{}
	submits []string
	nextID  int
	failAt  int // 1-based submission index that fails; 0 means never
}

func newFakeGateway(activeNames ...string) *fakeGateway {
	active := make(map[string]struct{}, len(activeNames))
	for _, n := range activeNames {
		active[n] = struct{}{}
	}

	return &fakeGateway{active: active, nextID: 101}
}

func (f *fakeGateway) ActiveJobs(context.Context) (map[string]struct{}, error) {
	return f.active, nil
}

func (f *fakeGateway) Submit(_ context.Context, invocation string) (string, error) {
	f.submits = append(f.submits, invocation)

	if f.failAt > 0 && len(f.submits) == f.failAt {
		return "", fmt.Errorf("%w: sbatch: error: invalid partition", sched.ErrSubmitFailed)
	}

	// Interactive invocations produce no scheduler output to parse an id
	// from, mirroring the Slurm gateway.
	if !strings.Contains(invocation, "sbatch") {
		return "", nil
	}

	id := strconv.Itoa(f.nextID)
	f.nextID++

	return id, nil
}

func parseDoc(t *testing.T, fsys afero.Fs, src string) *config.Document {
	t.Helper()

	doc, err := config.Parse(fsys, []byte(src))
	require.NoError(t, err)

	return doc
}

func TestRunSubmitsAllGridsInOrder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
prep:
  script: prep.sh
train:
  command: python train.py
`)
	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 2)
	assert.Contains(t, gw.submits[0], "prep.sh")
	assert.Contains(t, gw.submits[1], "python train.py")
}

func TestRunUnknownGridAbortsBeforeAnySubmission(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, "g:\n  script: run.sh\n")
	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	err := o.Run(context.Background(), []string{"g", "ghost"})

	require.ErrorIs(t, err, config.ErrUnknownGrid)
	assert.Empty(t, gw.submits)
}

func TestChainLaw(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
g:
  script: run.sh
  chain: 3
`)
	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 3)
	assert.NotContains(t, gw.submits[0], "--dependency=")
	assert.Contains(t, gw.submits[1], "--dependency=afterany:101")
	assert.Contains(t, gw.submits[2], "--dependency=afterany:102")
	assert.Equal(t, []string{"101", "102", "103"}, o.Ledger("g"))
}

func TestCrossGridDependencyLaw(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
a:
  script: a.sh
  params:
    seed: [1, 2]
  name: a-{seed}
b:
  script: b.sh
  dependency: a
`)
	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 3)
	assert.Contains(t, gw.submits[2], "--dependency=afterok:101:102")
}

func TestChainAndCrossGridDependenciesJoin(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
a:
  script: a.sh
b:
  script: b.sh
  chain: 2
  dependency: a
`)
	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 3)
	assert.Contains(t, gw.submits[1], "--dependency=afterok:101")
	assert.Contains(t, gw.submits[2], "--dependency=afterany:102,afterok:101")
}

func TestDependencyOnFullySkippedGridContributesNothing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.done", []byte(""), 0o644))

	doc := parseDoc(t, fsys, `
a:
  script: a.sh
  completion: a.done
b:
  script: b.sh
  dependency: a
`)
	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 1)
	assert.NotContains(t, gw.submits[0], "--dependency=")
}

func TestActiveJobIsNeverResubmitted(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
g:
  script: run.sh
  name: g-{seed}
  params:
    seed: [1, 2]
`)
	gw := newFakeGateway("g-1")

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 1)
	assert.Contains(t, gw.submits[0], "-J g-2")
}

func TestCollidingJobNamesSubmitOnce(t *testing.T) {
	fsys := afero.NewMemMapFs()

	// Both dictionaries render the same job name; the second must be
	// treated as already submitted once the first succeeds.
	doc := parseDoc(t, fsys, `
g:
  script: run.sh
  params:
    seed: [1, 2]
`)
	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	assert.Len(t, gw.submits, 1)
}

func TestSubmissionFailureAbortsWithoutRollback(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
g:
  script: run.sh
  name: g-{seed}
  params:
    seed: [1, 2, 3]
`)
	gw := newFakeGateway()
	gw.failAt = 2

	o := New(fsys, gw, doc)
	err := o.Run(context.Background(), nil)

	require.ErrorIs(t, err, sched.ErrSubmitFailed)
	assert.Contains(t, err.Error(), "invalid partition")

	// The first dispatch stands.
	assert.Len(t, gw.submits, 2)
	assert.Equal(t, []string{"101"}, o.Ledger("g"))
}

func TestDryRunNeverDispatches(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
g:
  script: run.sh
  chain: 2
`)
	gw := newFakeGateway()

	out := new(bytes.Buffer)

	o := New(fsys, &sched.DryRun{Gateway: gw}, doc,
		WithReporter(NewReporter(out, nil, true)))
	require.NoError(t, o.Run(context.Background(), nil))

	assert.Empty(t, gw.submits, "dry run must not reach the gateway's submit path")
	assert.Equal(t, []string{sched.DryRunJobID, sched.DryRunJobID}, o.Ledger("g"))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "--dependency=afterany:"+sched.DryRunJobID)
}

func TestInteractiveModeRecordsNoIDs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
g:
  command: python train.py
`)
	gw := newFakeGateway()

	o := New(fsys, gw, doc, WithMode(sched.Interactive))
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 1)
	assert.Equal(t, "python train.py", gw.submits[0])
	assert.Empty(t, o.Ledger("g"))
}

func TestOverridesAppendedToBatchInvocation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, "g:\n  script: run.sh\n")
	gw := newFakeGateway()

	o := New(fsys, gw, doc, WithOverrides([]string{"--qos=high"}))
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 1)
	assert.Contains(t, gw.submits[0], "--qos=high")
}

func TestPreconditionGatesSubmission(t *testing.T) {
	fsys := afero.NewMemMapFs()
	doc := parseDoc(t, fsys, `
g:
  script: run.sh
  name: g-{seed}
  precondition: in/{seed}.csv
  params:
    seed: [1, 2]
`)
	require.NoError(t, afero.WriteFile(fsys, "in/2.csv", []byte(""), 0o644))

	gw := newFakeGateway()

	o := New(fsys, gw, doc)
	require.NoError(t, o.Run(context.Background(), nil))

	require.Len(t, gw.submits, 1)
	assert.Contains(t, gw.submits[0], "-J g-2")
}
