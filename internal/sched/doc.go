// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sched contains the scheduler gateway and the invocation
// formatter. The gateway abstracts the batch scheduler to two calls: an
// active-jobs query scoped to the invoking user and a submit call returning
// the dispatched job's id. The Slurm implementation shells out to squeue and
// sbatch; a dry-run decorator suppresses dispatch for rehearsals.
package sched
