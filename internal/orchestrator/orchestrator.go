// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/gridsub/internal/config"
	"github.com/matt-FFFFFF/gridsub/internal/ctxlog"
	"github.com/matt-FFFFFF/gridsub/internal/grid"
	"github.com/matt-FFFFFF/gridsub/internal/params"
	"github.com/matt-FFFFFF/gridsub/internal/sched"
	"github.com/spf13/afero"
)

// Orchestrator owns a single run's submission state: the set of currently
// active job names, refreshed once from the gateway when the run starts and
// extended after each successful submission, and the dependency ledger
// mapping grid key to the job ids obtained this run. Neither survives the
// run; the next invocation rebuilds both from the live queue and the
// on-disk markers.
type Orchestrator struct {
	fsys      afero.Fs
	gw        sched.Gateway
	doc       *config.Document
	mode      sched.Mode
	overrides []string
	reporter  *Reporter

	active map[string]struct{}
	ledger map[string][]string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMode sets the invocation mode (Batch by default).
func WithMode(mode sched.Mode) Option {
	return func(o *Orchestrator) {
		o.mode = mode
	}
}

// WithOverrides appends global scheduler-flag overrides to every batch
// invocation.
func WithOverrides(overrides []string) Option {
	return func(o *Orchestrator) {
		o.overrides = overrides
	}
}

// WithReporter sets the run reporter.
func WithReporter(r *Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// New creates an Orchestrator for one run over the given document.
func New(fsys afero.Fs, gw sched.Gateway, doc *config.Document, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fsys:     fsys,
		gw:       gw,
		doc:      doc,
		reporter: NewReporter(nil, nil, false),
		ledger:   make(map[string][]string),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Run submits the selected grids in order. An empty selection submits every
// configured grid in declaration order. The selection is resolved before any
// submission, so an unknown grid name aborts the whole run. A gateway
// failure aborts the run; already-dispatched jobs are not rolled back.
func (o *Orchestrator) Run(ctx context.Context, names []string) error {
	grids, err := o.doc.Select(names)
	if err != nil {
		return err
	}

	active, err := o.gw.ActiveJobs(ctx)
	if err != nil {
		return err
	}

	o.active = active

	for _, g := range grids {
		if err := o.submitGrid(ctx, g); err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) submitGrid(ctx context.Context, g *grid.Grid) error {
	o.reporter.Grid(g.Key)

	counts := make(map[grid.Outcome]int, 4)

	for _, d := range g.Params {
		dec, err := g.EvaluateSkip(o.fsys, d, o.isActive)
		if err != nil {
			return err
		}

		counts[dec.Outcome]++

		if dec.Outcome != grid.Proceed {
			ctxlog.Debug(ctx, "skipping job", "grid", g.Key, "job", dec.JobName, "reason", dec.Reason())
			continue
		}

		if err := o.submitChain(ctx, g, d, dec.JobName); err != nil {
			return err
		}
	}

	o.reporter.Summary(counts)

	return nil
}

// submitChain dispatches the chain of submissions for one parameter
// dictionary, threading each returned id into the next link's dependency
// expression. On success the rendered job name joins the active set, so a
// later dictionary rendering to the same name is skipped as already active.
func (o *Orchestrator) submitChain(ctx context.Context, g *grid.Grid, d params.Dict, jobName string) error {
	prev := ""

	for i := 0; i < g.Chain; i++ {
		expr := o.dependencyExpr(prev, g.DependsOn)

		invocation, err := sched.Format(g, d, jobName, expr, o.mode, o.overrides)
		if err != nil {
			return err
		}

		o.reporter.Command(invocation)

		id, err := o.gw.Submit(ctx, invocation)
		if err != nil {
			return fmt.Errorf("grid %q job %q: %w", g.Key, jobName, err)
		}

		if id == "" {
			continue
		}

		o.ledger[g.Key] = append(o.ledger[g.Key], id)
		prev = id
	}

	o.active[jobName] = struct{}{}

	return nil
}

// dependencyExpr combines the intra-chain after-any dependency with the
// after-ok dependencies on every id recorded for the grids this grid depends
// on. A dependency grid with no recorded ids contributes nothing; it may
// have been skipped entirely.
func (o *Orchestrator) dependencyExpr(prev string, deps []string) string {
	var parts []string

	if prev != "" {
		parts = append(parts, "afterany:"+prev)
	}

	for _, dep := range deps {
		ids := o.ledger[dep]
		if len(ids) == 0 {
			continue
		}

		parts = append(parts, "afterok:"+strings.Join(ids, ":"))
	}

	return strings.Join(parts, ",")
}

// Ledger returns the job ids recorded for a grid in this run.
func (o *Orchestrator) Ledger(gridKey string) []string {
	return o.ledger[gridKey]
}

func (o *Orchestrator) isActive(jobName string) bool {
	_, ok := o.active[jobName]
	return ok
}
