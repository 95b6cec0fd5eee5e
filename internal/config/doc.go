// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads and validates the configuration document: a single
// YAML mapping of grid name to grid object, processed in declaration order.
package config
