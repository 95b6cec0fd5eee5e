// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package orchestrator drives a single submission run: it resolves the grid
// selection, queries the gateway for the user's active jobs, applies the
// skip policy to every expanded parameter dictionary, and dispatches the
// surviving jobs in order, chaining dependent submissions and threading
// cross-grid dependency ids through the in-memory ledger. Execution is
// strictly sequential; each submission blocks on the gateway before the
// next begins.
package orchestrator
