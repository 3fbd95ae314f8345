// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/textanim/internal/animator"
)

// Editor ranges. Values outside them are accepted with a warning.
const (
	MinAnimationMS = 200
	MaxAnimationMS = 3000
	MinDisplayMS   = 500
	MaxDisplayMS   = 5000
)

// Spec is the YAML form of one widget.
type Spec struct {
	Name        string   `yaml:"name"`
	Prefix      string   `yaml:"prefix"`
	Suffix      string   `yaml:"suffix"`
	Layout      string   `yaml:"layout"`
	Effect      string   `yaml:"effect"`
	AnimationMS int      `yaml:"animation_ms"`
	DisplayMS   int      `yaml:"display_ms"`
	Items       []string `yaml:"items"`
}

type file struct {
	Widgets []Spec `yaml:"widgets"`
	Spec    `yaml:",inline"`
}

// Warning is a non-fatal problem with a widget definition.
type Warning struct {
	Widget  string
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s.%s: %s", w.Widget, w.Field, w.Message)
}

// Load reads a widget file.
func Load(path string) ([]Block, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading widget file: %w", err)
	}
	blocks, warnings, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, warnings, nil
}

// Parse decodes widget YAML. Unknown keys are an error; out-of-range
// durations and unknown effects are warnings.
func Parse(data []byte) ([]Block, []Warning, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("parsing widget file: %w", err)
	}

	specs := f.Widgets
	if len(specs) == 0 {
		if len(f.Spec.Items) == 0 && f.Spec.Name == "" {
			return nil, nil, fmt.Errorf("parsing widget file: no widgets defined")
		}
		specs = []Spec{f.Spec}
	}

	var (
		blocks   []Block
		warnings []Warning
	)
	for i, s := range specs {
		b, w, err := s.Block(i)
		if err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, b)
		warnings = append(warnings, w...)
	}
	return blocks, warnings, nil
}

// Block converts a spec to a Block. index names unnamed widgets.
func (s Spec) Block(index int) (Block, []Warning, error) {
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("widget-%d", index+1)
	}

	layout, err := ParseLayout(s.Layout)
	if err != nil {
		return Block{}, nil, fmt.Errorf("widget %s: %w", name, err)
	}

	var warnings []Warning
	warn := func(field, format string, args ...any) {
		warnings = append(warnings, Warning{Widget: name, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	effect := animator.DefaultEffect
	if s.Effect != "" {
		effect = animator.ParseEffectType(s.Effect)
		if !effect.Known() {
			warn("effect", "unknown effect %q, text will swap without animation", s.Effect)
		}
	}
	if s.AnimationMS != 0 && (s.AnimationMS < MinAnimationMS || s.AnimationMS > MaxAnimationMS) {
		warn("animation_ms", "%d outside editor range %d-%d", s.AnimationMS, MinAnimationMS, MaxAnimationMS)
	}
	if s.DisplayMS != 0 && (s.DisplayMS < MinDisplayMS || s.DisplayMS > MaxDisplayMS) {
		warn("display_ms", "%d outside editor range %d-%d", s.DisplayMS, MinDisplayMS, MaxDisplayMS)
	}
	items := NormalizeItems(s.Items)
	if len(items) == 1 && items[0] == Placeholder {
		warn("items", "no text items, showing placeholder")
	}

	return Block{
		Name:   name,
		Prefix: s.Prefix,
		Suffix: s.Suffix,
		Layout: layout,
		Config: animator.Config{
			TextStrings:       items,
			AnimationType:     effect,
			AnimationDuration: time.Duration(s.AnimationMS) * time.Millisecond,
			DisplayDuration:   time.Duration(s.DisplayMS) * time.Millisecond,
		},
	}, warnings, nil
}
