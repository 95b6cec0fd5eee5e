// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a single concrete parameter value: string, integer, float,
// boolean or nil.
type Value any

// Pair is one named parameter value.
type Pair struct {
	Key   string
	Value Value
}

// Dict is an ordered parameter dictionary. Order follows the declaration
// order of the parameter keys in the configuration.
type Dict []Pair

// Get returns the value for the given key and whether it is present.
func (d Dict) Get(key string) (Value, bool) {
	for _, p := range d {
		if p.Key == key {
			return p.Value, true
		}
	}

	return nil, false
}

// Keys returns the keys in declaration order.
func (d Dict) Keys() []string {
	keys := make([]string, len(d))
	for i, p := range d {
		keys[i] = p.Key
	}

	return keys
}

// String renders the dictionary for log and report output.
func (d Dict) String() string {
	sb := strings.Builder{}
	sb.WriteString("{")

	for i, p := range d {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(p.Key)
		sb.WriteString("=")
		sb.WriteString(Render(p.Value))
	}

	sb.WriteString("}")

	return sb.String()
}

// IsArgument reports whether a parameter key names a command-line argument
// rather than a variable. Keys beginning with "$" are positional arguments
// and keys beginning with "-" are flag arguments; everything else is a
// variable bound as a shell assignment before the command runs.
func IsArgument(key string) bool {
	return strings.HasPrefix(key, "$") || strings.HasPrefix(key, "-")
}

// Split separates a parameter dictionary into variables and arguments,
// preserving the dictionary's insertion order within each half.
func Split(d Dict) (variables, arguments Dict) {
	for _, p := range d {
		if IsArgument(p.Key) {
			arguments = append(arguments, p)
			continue
		}

		variables = append(variables, p)
	}

	return variables, arguments
}

// Render returns the string form of a parameter value. Nil renders as the
// empty string; booleans and numbers are stringified.
func Render(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	default:
		return fmt.Sprintf("%v", t)
	}
}
