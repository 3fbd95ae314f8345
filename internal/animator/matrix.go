// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"math/rand/v2"
	"strings"

	"github.com/jeranaias/textanim/internal/util"
)

// MatrixIterations is the number of reveal steps; the effect writes
// MatrixIterations+1 frames, the last being the exact next text.
const MatrixIterations = 20

// MatrixEffect resolves the next text left to right out of random glyphs.
type MatrixEffect struct{}

func (MatrixEffect) Type() EffectType { return EffectMatrix }

func (MatrixEffect) Plan(t Transition) Sequence {
	target := util.Graphemes(t.Next)
	interval := stepInterval(t.Duration, MatrixIterations)

	seq := make(Sequence, 0, MatrixIterations+1)
	for i := 0; i < MatrixIterations; i++ {
		step := i
		seq = append(seq, Step{Delay: interval, Do: func(c *Container) {
			c.SetText(MatrixFrame(target, step, MatrixIterations, t.Rand))
		}})
	}
	seq = append(seq, Step{Delay: interval, Do: setText(t.Next)})
	return seq
}

// MatrixFrame renders frame step of a reveal over target. Position p shows
// the real character when p < len(target)*step/iterations (exact rational
// comparison), otherwise a random glyph. At step == iterations every
// position is revealed.
func MatrixFrame(target []string, step, iterations int, r *rand.Rand) string {
	n := len(target)
	var sb strings.Builder
	for p, ch := range target {
		if p*iterations < n*step {
			sb.WriteString(ch)
			continue
		}
		sb.WriteString(randomGlyph(r))
	}
	return sb.String()
}

// MatrixRevealed is the number of positions MatrixFrame shows correctly.
func MatrixRevealed(n, step, iterations int) int {
	if iterations <= 0 {
		return n
	}
	// count of p in [0,n) with p*iterations < n*step == ceil(n*step/iterations)
	k := (n*step + iterations - 1) / iterations
	if k > n {
		return n
	}
	if k < 0 {
		return 0
	}
	return k
}
