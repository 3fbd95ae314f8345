// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/animator/animatortest"
)

func TestPx(t *testing.T) {
	assert.Equal(t, "12px", animator.Px(12))
	assert.Equal(t, "12.5px", animator.Px(12.5))

	v, ok := animator.ParsePx("110px")
	require.True(t, ok)
	assert.Equal(t, 110.0, v)

	v, ok = animator.ParsePx(" 7 ")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	for _, bad := range []string{"", "px", "auto", "NaNpx"} {
		_, ok := animator.ParsePx(bad)
		assert.False(t, ok, "ParsePx(%q)", bad)
	}
}

func TestContainer_SizeHonorsOverrides(t *testing.T) {
	c := animator.NewContainer("Hello", animatortest.FixedMeasurer())
	assert.Equal(t, animator.Size{Width: 50, Height: 20}, c.Size())

	c.SetStyle(animator.PropMinWidth, "80px")
	c.SetStyle(animator.PropMinHeight, "10px")
	assert.Equal(t, animator.Size{Width: 80, Height: 20}, c.Size(), "min-* only raises")

	c.SetStyle(animator.PropWidth, "30px")
	c.SetStyle(animator.PropHeight, "40px")
	assert.Equal(t, animator.Size{Width: 30, Height: 40}, c.Size(), "width/height win")
}

func TestContainer_SizeWrapsAtAvailableWidth(t *testing.T) {
	c := animator.NewContainer("Hello there", animatortest.FixedMeasurer())
	c.SetAvailableWidth(60)
	assert.Equal(t, animator.Size{Width: 60, Height: 40}, c.Size())

	c.SetAvailableWidth(-5)
	assert.Equal(t, 0.0, c.AvailableWidth())
}

func TestContainer_NilMeasurer(t *testing.T) {
	c := animator.NewContainer("Hello", nil)
	assert.Equal(t, animator.Size{}, c.Size())
}

func TestContainer_MutationsAndNoOps(t *testing.T) {
	c := animator.NewContainer("", nil)
	rec := (&animatortest.Recorder{}).Attach(c)

	c.SetText("A")
	c.SetStyle(animator.PropOpacity, "0")
	c.ClearStyle(animator.PropOpacity, animator.PropWidth)
	c.SetAttr(animator.AttrText, "B")
	c.RemoveAttr(animator.AttrText)
	c.RemoveAttr(animator.AttrText)
	c.AddClass(animator.ClassAnimating)
	c.AddClass(animator.ClassAnimating)
	c.RemoveClass(animator.ClassAnimating, animator.ClassTyping)

	want := []animator.Mutation{
		{Kind: animator.MutationText, Value: "A"},
		{Kind: animator.MutationStyle, Name: "opacity", Value: "0"},
		{Kind: animator.MutationStyle, Name: "opacity", Removed: true},
		{Kind: animator.MutationAttr, Name: animator.AttrText, Value: "B"},
		{Kind: animator.MutationAttr, Name: animator.AttrText, Removed: true},
		{Kind: animator.MutationClass, Name: animator.ClassAnimating},
		{Kind: animator.MutationClass, Name: animator.ClassAnimating, Removed: true},
	}
	assert.Equal(t, want, rec.Mutations)
}

func TestContainer_StylesIsACopy(t *testing.T) {
	c := animator.NewContainer("", nil)
	c.SetStyle(animator.PropOpacity, "1")
	s := c.Styles()
	s[animator.PropOpacity] = "0"
	v, _ := c.Style(animator.PropOpacity)
	assert.Equal(t, "1", v)
}

func TestResetContainer_Idempotent(t *testing.T) {
	c := animator.NewContainer("x", nil)
	for _, p := range animator.OverrideProperties {
		c.SetStyle(p, "1")
	}
	c.SetAttr(animator.AttrText, "y")
	c.AddClass(animator.ClassAnimating)
	c.AddClass(animator.ClassTyping)

	animator.ResetContainer(c)
	assert.Empty(t, c.Styles())
	assert.Empty(t, c.Classes())
	_, ok := c.Attr(animator.AttrText)
	assert.False(t, ok)

	rec := (&animatortest.Recorder{}).Attach(c)
	animator.ResetContainer(c)
	animator.ResetContainer(c)
	assert.Empty(t, rec.Mutations, "resetting a clean container changes nothing")
	assert.Equal(t, "x", c.Text())
}

func TestMutationKindString(t *testing.T) {
	assert.Equal(t, "text", animator.MutationText.String())
	assert.Equal(t, "style", animator.MutationStyle.String())
	assert.Equal(t, "attr", animator.MutationAttr.String())
	assert.Equal(t, "class", animator.MutationClass.String())
	assert.Equal(t, "unknown", animator.MutationKind(42).String())
}
