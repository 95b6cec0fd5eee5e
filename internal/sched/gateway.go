// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sched

import (
	"context"
	"errors"
)

var (
	// ErrSubmitFailed is returned when the scheduler rejects a submission.
	ErrSubmitFailed = errors.New("job submission failed")
	// ErrQueueQuery is returned when the active-jobs query fails.
	ErrQueueQuery = errors.New("failed to query active jobs")
	// ErrNoUser is returned when the invoking user cannot be determined from
	// the environment.
	ErrNoUser = errors.New("USER not set in environment")
)

// Gateway is the batch-scheduler interface the orchestrator depends on.
// ActiveJobs returns the names of the invoking user's queued or running
// jobs. Submit dispatches a fully formed invocation and returns the numeric
// job id parsed from the scheduler's success output, or an empty id when the
// output carries none (interactive invocations).
type Gateway interface {
	ActiveJobs(ctx context.Context) (map[string]struct{}, error)
	Submit(ctx context.Context, invocation string) (jobID string, err error)
}
