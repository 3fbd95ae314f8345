// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render_cmd.go - The render command.

package cli

import (
	"bytes"
	"io"

	"github.com/jeranaias/textanim/internal/markup"
	"github.com/jeranaias/textanim/internal/util"
)

// HandleRender writes the saved block HTML for every widget in the input,
// to --output or w.
func HandleRender(args Args, w io.Writer) error {
	p := args.Parser(animationBoolFlags...)

	cfg, warnings, err := loadConfig(args)
	if err != nil {
		return err
	}
	o, more, err := parseOverrides(p, cfg)
	if err != nil {
		return err
	}
	warnings = append(warnings, more...)

	in, err := readInput(p, 0, cfg, o)
	if err != nil {
		return err
	}
	printWarnings(append(warnings, in.warnings...))

	var buf bytes.Buffer
	for _, b := range in.blocks {
		if err := markup.Render(&buf, b); err != nil {
			return NewCommandError("render", "render", b.Name, err)
		}
		buf.WriteByte('\n')
	}

	if out := p.Flag("output"); out != "" {
		if err := util.AtomicWriteFile(out, buf.Bytes(), 0o644); err != nil {
			return NewCommandError("render", "write", out, err)
		}
		return nil
	}
	_, err = w.Write(buf.Bytes())
	return err
}
