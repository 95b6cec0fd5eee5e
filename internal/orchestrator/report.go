// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/gridsub/internal/color"
	"github.com/matt-FFFFFF/gridsub/internal/grid"
)

// summaryOrder fixes the outcome order in the skip summary.
var summaryOrder = []grid.Outcome{
	grid.Proceed,
	grid.SkipAlreadyActive,
	grid.SkipPrecondition,
	grid.SkipCompletion,
}

// Reporter writes the human-facing run report. Chatter (grid headers, skip
// summaries, dispatched commands) goes to Err; in dry-run mode the rendered
// invocations go to Out so they can be piped or copy-pasted.
type Reporter struct {
	out    io.Writer
	err    io.Writer
	dryRun bool
}

// NewReporter creates a Reporter. Nil writers are discarded.
func NewReporter(out, errW io.Writer, dryRun bool) *Reporter {
	if out == nil {
		out = io.Discard
	}

	if errW == nil {
		errW = io.Discard
	}

	return &Reporter{out: out, err: errW, dryRun: dryRun}
}

// Grid reports the start of a grid's processing.
func (r *Reporter) Grid(key string) {
	fmt.Fprintln(r.err, color.Colorize(fmt.Sprintf("[%s]", key), color.FgYellow))
}

// Command reports one rendered invocation.
func (r *Reporter) Command(invocation string) {
	if r.dryRun {
		fmt.Fprintln(r.out, invocation)
		return
	}

	fmt.Fprintln(r.err, invocation)
}

// Summary reports the per-outcome job counts for a grid. A grid that
// expanded to no jobs at all produces no summary line.
func (r *Reporter) Summary(counts map[grid.Outcome]int) {
	if len(counts) == 0 {
		return
	}

	skipped := 0

	parts := make([]string, 0, len(counts))

	for _, outcome := range summaryOrder {
		n, ok := counts[outcome]
		if !ok {
			continue
		}

		if outcome != grid.Proceed {
			skipped += n
		}

		parts = append(parts, fmt.Sprintf("%s: %d", outcome, n))
	}

	line := fmt.Sprintf(" - skipping %d jobs (%s)", skipped, strings.Join(parts, ", "))
	fmt.Fprintln(r.err, color.Colorize(line, color.FgYellow))
}
