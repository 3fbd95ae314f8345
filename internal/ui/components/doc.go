// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the Bubble Tea pieces of the textanim previewer.

# Scheduling

TeaScheduler (scheduler.go) implements animator.Scheduler on top of
tea.Tick. Controllers schedule callbacks; the model flushes them into
commands and runs them from Update when the TimerFiredMsg comes back, so
every container mutation happens on the program goroutine.

# Widgets

TextAnimator (text_animator.go) owns one Controller and renders its
container with Lip Gloss: locked min-width/min-height become padded boxes,
glitch width/height with overflow hidden clip the text, and opacity and
transform changes are eased over their transition durations.

# Preview

Preview (preview.go) is the tea.Model for `textanim play`. It shows every
widget, handles restart and reduced-motion keys (keys.go), and rebuilds all
widgets on ReloadMsg.
*/
package components
