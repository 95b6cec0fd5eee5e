// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/gridsub/internal/params"
)

var (
	// ErrUndeclaredKey is returned when a template references a parameter that
	// is not present in the dictionary.
	ErrUndeclaredKey = errors.New("template references undeclared parameter")
	// ErrBadTemplate is returned when a template has unbalanced braces.
	ErrBadTemplate = errors.New("malformed template")
)

// ExpandTemplate substitutes "{key}" references in tmpl with the string form
// of the corresponding dictionary values. "{{" and "}}" escape literal
// braces. Only keys present in the dictionary may be referenced; anything
// else is an error rather than a silent formatting fault.
func ExpandTemplate(tmpl string, d params.Dict) (string, error) {
	sb := strings.Builder{}
	sb.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		c := tmpl[i]

		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')

				i += 2

				continue
			}

			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated reference in %q", ErrBadTemplate, tmpl)
			}

			key := tmpl[i+1 : i+end]

			value, ok := d.Get(key)
			if !ok {
				return "", fmt.Errorf("%w: %q in %q", ErrUndeclaredKey, key, tmpl)
			}

			sb.WriteString(params.Render(value))

			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')

				i += 2

				continue
			}

			return "", fmt.Errorf("%w: unexpected '}' in %q", ErrBadTemplate, tmpl)
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String(), nil
}
