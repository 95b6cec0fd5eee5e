// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sched

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/matt-FFFFFF/gridsub/internal/ctxlog"
)

var jobIDPattern = regexp.MustCompile(`Submitted batch job (\d+)`)

// execCommand is swapped out in tests.
var execCommand = exec.CommandContext

// Slurm is the Gateway implementation backed by the sbatch and squeue
// binaries. Invocations run through the shell so that heredoc command bodies
// and quoted arguments behave as they would when typed at a prompt.
type Slurm struct {
	user string
}

// NewSlurm creates a Slurm gateway scoped to the invoking user, read from
// the USER environment variable.
func NewSlurm() (*Slurm, error) {
	user := os.Getenv("USER")
	if user == "" {
		return nil, ErrNoUser
	}

	return &Slurm{user: user}, nil
}

// ActiveJobs returns the names of the user's queued and running jobs.
func (s *Slurm) ActiveJobs(ctx context.Context) (map[string]struct{}, error) {
	cmd := execCommand(ctx, "squeue", "-u", s.user, "-h", "-o", "%j")

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrQueueQuery, err, strings.TrimSpace(stderr.String()))
	}

	names := make(map[string]struct{})

	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		names[line] = struct{}{}
	}

	return names, nil
}

// Submit runs the invocation through the shell. On success the job id is
// parsed from the scheduler's standard output; output without an id (an
// interactive invocation, for example) yields an empty id without error.
// Failure is reported with the scheduler's diagnostic text.
func (s *Slurm) Submit(ctx context.Context, invocation string) (string, error) {
	cmd := execCommand(ctx, "sh", "-c", invocation)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %v: %s", ErrSubmitFailed, err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out != "" {
		ctxlog.Debug(ctx, "scheduler output", "output", out)
	}

	m := jobIDPattern.FindStringSubmatch(out)
	if m == nil {
		return "", nil
	}

	return m[1], nil
}
