// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"math/rand/v2"
	"strings"
	"time"
)

// =============================================================================
// EFFECT STRATEGY
// =============================================================================

// Transition is the input to one effect run.
type Transition struct {
	Current   string
	Next      string
	Duration  time.Duration
	Rand      *rand.Rand // nil uses the global source
	Container *Container
}

// Effect turns a Transition into a Sequence. The sequence's end is the
// visual end of the transition; the controller unlocks the layout right
// after the last step.
type Effect interface {
	Type() EffectType
	Plan(t Transition) Sequence
}

// ScrambleAlphabet is the glyph pool for matrix and glitch frames.
const ScrambleAlphabet = "!@#$%^&*()_+-=[]{}|;:,.<>?ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomGlyph picks one glyph uniformly from ScrambleAlphabet.
func randomGlyph(r *rand.Rand) string {
	n := len(ScrambleAlphabet)
	var i int
	if r != nil {
		i = r.IntN(n)
	} else {
		i = rand.IntN(n)
	}
	return ScrambleAlphabet[i : i+1]
}

func randomText(r *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteString(randomGlyph(r))
	}
	return sb.String()
}

func setText(s string) func(*Container) {
	return func(c *Container) { c.SetText(s) }
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps effect names to strategies. Lookups of unknown names yield
// the swap fallback.
type Registry struct {
	effects  map[EffectType]Effect
	order    []EffectType
	fallback Effect
}

// NewRegistry creates a registry holding effects.
func NewRegistry(effects ...Effect) *Registry {
	r := &Registry{
		effects:  make(map[EffectType]Effect),
		fallback: SwapEffect{},
	}
	for _, e := range effects {
		r.Register(e)
	}
	return r
}

// DefaultRegistry holds the six built-in effects.
func DefaultRegistry() *Registry {
	return NewRegistry(
		TypewriterEffect{},
		MatrixEffect{},
		FadeEffect{},
		FlashEffect{},
		BurstEffect{},
		GlitchEffect{},
	)
}

// Register adds or replaces an effect.
func (r *Registry) Register(e Effect) {
	if _, ok := r.effects[e.Type()]; !ok {
		r.order = append(r.order, e.Type())
	}
	r.effects[e.Type()] = e
}

// Lookup returns the effect for t. The bool is false when t is unknown and
// the fallback swap was returned instead.
func (r *Registry) Lookup(t EffectType) (Effect, bool) {
	if e, ok := r.effects[t]; ok {
		return e, true
	}
	return r.fallback, false
}

// Types lists registered effects in registration order.
func (r *Registry) Types() []EffectType {
	return append([]EffectType(nil), r.order...)
}

// SwapEffect replaces the text at once. It is the fallback for unknown
// effect names and completes synchronously.
type SwapEffect struct{}

func (SwapEffect) Type() EffectType { return "swap" }

func (SwapEffect) Plan(t Transition) Sequence {
	return Sequence{{Do: setText(t.Next)}}
}
