// Package selector asks the operator to pick one item from a list. Every
// implementation distinguishes three outcomes: an index, an explicit "no
// selection", and an error meaning the input channel is unusable.
//
// List is a full-screen-free bubbletea list for terminals. Numbered is a
// line-oriented numbered menu for plain input streams.
package selector

import "errors"

// ErrInterrupted is returned when the operator interrupts a prompt (ctrl+c).
var ErrInterrupted = errors.New("selection interrupted")
