// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// highlight.go - Syntax highlighting for structured command output.

package cli

import (
	"bytes"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightStyle is the chroma theme used for terminal output.
const highlightStyle = "monokai"

// Highlight returns source colored for the terminal. language is a chroma
// lexer name such as "json" or "toml". When highlighting fails the source
// is returned unchanged.
func Highlight(source, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return buf.String()
}

// writeHighlighted writes source to w, colored only when w is the
// terminal and colors are on.
func writeHighlighted(w io.Writer, source, language string, color bool) error {
	if color {
		source = Highlight(source, language)
	}
	_, err := io.WriteString(w, source)
	return err
}
