// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package params implements the declarative parameter model for job grids.
// A parameter set maps names to scalars, lists of scalars, or special
// generator descriptors (filesystem globs and integer ranges). Expansion
// takes the Cartesian product of every axis in declaration order, producing
// one concrete parameter dictionary per combination. Keys beginning with "$"
// or "-" are command-line arguments; all other keys are variables.
package params
