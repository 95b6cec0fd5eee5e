// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sched

import (
	"context"
)

// DryRunJobID is the sentinel id returned for suppressed submissions. It is
// never a valid scheduler dependency token: the dependency ledger is
// rebuilt from scratch every run, so a sentinel recorded during a dry run
// cannot leak into a later real submission.
const DryRunJobID = "-1"

// DryRun wraps a Gateway, suppressing submission. The active-jobs query is
// delegated so that skip decisions match what a real run would do; display of
// the suppressed invocation is the caller's concern.
type DryRun struct {
	Gateway
}

// Submit discards the invocation and returns the sentinel id.
func (d *DryRun) Submit(context.Context, string) (string, error) {
	return DryRunJobID, nil
}

// Static is a Gateway with a fixed active-job set and no submission
// capability. It backs read-only inspection of a configuration and tests.
type Static struct {
	Names map[string]struct{}
}

// ActiveJobs returns the fixed name set.
func (s *Static) ActiveJobs(context.Context) (map[string]struct{}, error) {
	if s.Names == nil {
		return map[string]struct{}{}, nil
	}

	return s.Names, nil
}

// Submit always fails; Static exists for inspection, not dispatch.
func (s *Static) Submit(context.Context, string) (string, error) {
	return "", ErrSubmitFailed
}
