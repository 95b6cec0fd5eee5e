// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/gridsub/internal/grid"
	"github.com/spf13/afero"
)

var (
	// ErrInvalidYaml is returned when the document is not a YAML mapping of grids.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrNoGrids is returned when the document declares no grids.
	ErrNoGrids = errors.New("no grids declared")
	// ErrUnknownGrid is returned when a selection references an undeclared grid.
	ErrUnknownGrid = errors.New("unknown grid")
)

// Document is a parsed configuration: the declared grids in declaration
// order.
type Document struct {
	Grids []*grid.Grid

	index map[string]*grid.Grid
}

// Parse decodes a configuration document, a YAML mapping of grid name to
// grid object, preserving declaration order. Every grid is validated and
// its parameter sets expanded against the given filesystem; validation
// failures across grids are accumulated before the error is returned.
func Parse(fsys afero.Fs, data []byte) (*Document, error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err)
	}

	if len(ms) == 0 {
		return nil, ErrNoGrids
	}

	doc := &Document{
		Grids: make([]*grid.Grid, 0, len(ms)),
		index: make(map[string]*grid.Grid, len(ms)),
	}

	var errs *multierror.Error

	for _, item := range ms {
		key := fmt.Sprintf("%v", item.Key)

		raw, err := yaml.Marshal(item.Value)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("grid %q: %w: %v", key, ErrInvalidYaml, err))
			continue
		}

		spec := new(grid.Spec)
		if err := yaml.UnmarshalWithOptions(raw, spec, yaml.Strict()); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("grid %q: %w: %v", key, ErrInvalidYaml, err))
			continue
		}

		g, err := grid.Build(fsys, key, spec)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		doc.Grids = append(doc.Grids, g)
		doc.index[key] = g
	}

	for _, g := range doc.Grids {
		for _, dep := range g.DependsOn {
			if _, ok := doc.index[dep]; !ok {
				errs = multierror.Append(errs, fmt.Errorf("grid %q: dependency: %w: %q", g.Key, ErrUnknownGrid, dep))
			}
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Lookup returns the grid declared under the given config key.
func (d *Document) Lookup(name string) (*grid.Grid, bool) {
	g, ok := d.index[name]
	return g, ok
}

// Select resolves a grid-name selection. An empty selection returns all
// grids in declaration order; otherwise the named grids are returned in the
// order given. A reference to an undeclared grid is an error, reported
// before any submission happens.
func (d *Document) Select(names []string) ([]*grid.Grid, error) {
	if len(names) == 0 {
		return d.Grids, nil
	}

	selected := make([]*grid.Grid, 0, len(names))

	for _, name := range names {
		g, ok := d.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGrid, name)
		}

		selected = append(selected, g)
	}

	return selected, nil
}
