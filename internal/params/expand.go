// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// Axis is one declared parameter dimension: a scalar, an explicit list of
// scalars, or a special generator descriptor.
type Axis struct {
	Name string

	scalar  Value
	list    []Value
	special *Special
	kind    axisKind
}

type axisKind int

const (
	axisScalar axisKind = iota
	axisList
	axisSpecial
)

// Set is an ordered list of axes, preserving the declaration order of the
// parameter keys.
type Set []Axis

// Sets is one or more parameter sets. A bare mapping in the configuration
// decodes to a single set; a sequence of mappings decodes to one set each.
// Each set is expanded independently and the results concatenated.
type Sets []Set

// UnmarshalYAML implements yaml.BytesUnmarshaler, accepting either a single
// parameter mapping or a sequence of them.
func (s *Sets) UnmarshalYAML(b []byte) error {
	var many []yaml.MapSlice

	if err := yaml.Unmarshal(b, &many); err != nil {
		var one yaml.MapSlice
		if err2 := yaml.Unmarshal(b, &one); err2 != nil {
			return fmt.Errorf("params must be a mapping or a sequence of mappings: %w", err)
		}

		many = []yaml.MapSlice{one}
	}

	sets := make(Sets, 0, len(many))

	for _, ms := range many {
		set, err := decodeSet(ms)
		if err != nil {
			return err
		}

		sets = append(sets, set)
	}

	*s = sets

	return nil
}

func decodeSet(ms yaml.MapSlice) (Set, error) {
	set := make(Set, 0, len(ms))

	for _, item := range ms {
		name := fmt.Sprintf("%v", item.Key)

		axis, err := decodeAxis(name, item.Value)
		if err != nil {
			return nil, err
		}

		set = append(set, axis)
	}

	return set, nil
}

func decodeAxis(name string, raw any) (Axis, error) {
	switch v := raw.(type) {
	case yaml.MapSlice, map[string]any:
		b, err := yaml.Marshal(v)
		if err != nil {
			return Axis{}, fmt.Errorf("parameter %q: %w", name, err)
		}

		sp := new(Special)
		if err := yaml.UnmarshalWithOptions(b, sp, yaml.Strict()); err != nil {
			return Axis{}, fmt.Errorf("parameter %q: %w: %v", name, ErrBadDescriptor, err)
		}

		if err := sp.Validate(); err != nil {
			return Axis{}, fmt.Errorf("parameter %q: %w", name, err)
		}

		return Axis{Name: name, special: sp, kind: axisSpecial}, nil
	case []any:
		list := make([]Value, len(v))
		for i, e := range v {
			list[i] = e
		}

		return Axis{Name: name, list: list, kind: axisList}, nil
	default:
		return Axis{Name: name, scalar: v, kind: axisScalar}, nil
	}
}

// values coerces the axis to a list of concrete scalars, materializing
// special descriptors against the given filesystem.
func (a Axis) values(fsys afero.Fs) ([]Value, error) {
	switch a.kind {
	case axisList:
		return a.list, nil
	case axisSpecial:
		vals, err := a.special.Materialize(fsys)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", a.Name, err)
		}

		return vals, nil
	default:
		return []Value{a.scalar}, nil
	}
}

// Expand converts the declared parameter sets into the full list of concrete
// parameter dictionaries. Each set contributes the Cartesian product of its
// axes with the last axis varying fastest; an axis with no values makes its
// set contribute zero dictionaries. The function reads the filesystem only to
// expand glob descriptors and is deterministic for a fixed filesystem state.
func Expand(fsys afero.Fs, sets Sets) ([]Dict, error) {
	var dicts []Dict

	for _, set := range sets {
		expanded, err := expandSet(fsys, set)
		if err != nil {
			return nil, err
		}

		dicts = append(dicts, expanded...)
	}

	return dicts, nil
}

func expandSet(fsys afero.Fs, set Set) ([]Dict, error) {
	axes := make([][]Value, len(set))

	total := 1

	for i, axis := range set {
		vals, err := axis.values(fsys)
		if err != nil {
			return nil, err
		}

		if len(vals) == 0 {
			// An empty axis (empty glob match, empty list) removes every
			// combination from this set.
			return nil, nil
		}

		axes[i] = vals
		total *= len(vals)
	}

	dicts := make([]Dict, 0, total)
	odometer := make([]int, len(set))

	for {
		d := make(Dict, len(set))
		for i, axis := range set {
			d[i] = Pair{Key: axis.Name, Value: axes[i][odometer[i]]}
		}

		dicts = append(dicts, d)

		// Advance with the rightmost axis varying fastest.
		i := len(set) - 1
		for ; i >= 0; i-- {
			odometer[i]++
			if odometer[i] < len(axes[i]) {
				break
			}

			odometer[i] = 0
		}

		if i < 0 {
			break
		}
	}

	return dicts, nil
}
