// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package grid models a named job grid: its executable source, scheduler
// options, skip policy, chain length, cross-grid dependencies and the fully
// expanded list of parameter dictionaries. It also provides the constrained
// template evaluator used for job names and precondition/completion marker
// paths.
package grid
