// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/gridsub/internal/params"
)

// Options is a grid's scheduler options, normalized to a flat string of
// flags. The configuration may supply either a string, used verbatim, or a
// mapping of flag to value: long flags render as "--flag=value" and short
// flags as "flag value", in the mapping's declaration order.
type Options string

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (o *Options) UnmarshalYAML(b []byte) error {
	var flat string
	if err := yaml.Unmarshal(b, &flat); err == nil {
		*o = Options(flat)
		return nil
	}

	var ms yaml.MapSlice
	if err := yaml.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("slurm options must be a string or a mapping: %w", err)
	}

	parts := make([]string, 0, len(ms))

	for _, item := range ms {
		flag := fmt.Sprintf("%v", item.Key)
		value := params.Render(item.Value)

		if strings.HasPrefix(flag, "--") {
			parts = append(parts, fmt.Sprintf("%s=%s", flag, value))
			continue
		}

		parts = append(parts, fmt.Sprintf("%s %s", flag, value))
	}

	*o = Options(strings.Join(parts, " "))

	return nil
}

// StringList accepts either a single string or a sequence of strings.
type StringList []string

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (s *StringList) UnmarshalYAML(b []byte) error {
	var one string
	if err := yaml.Unmarshal(b, &one); err == nil {
		*s = StringList{one}
		return nil
	}

	var many []string
	if err := yaml.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("expected a string or a sequence of strings: %w", err)
	}

	*s = many

	return nil
}
