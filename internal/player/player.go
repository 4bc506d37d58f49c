// Package player drives full-screen playback: position, clamped navigation,
// key mapping, and transition timing for the slide swap.
package player

import (
	"time"

	"slidedeck/internal/models"
)

// TransitionDuration is how long a slide transition plays. The swap between
// outgoing and incoming slide is delayed by this much unless the slide's
// transition is "none".
const TransitionDuration = 380 * time.Millisecond

// Player tracks one playback run. Not safe for concurrent use; each presenter
// connection owns its own Player.
type Player struct {
	index int
	open  bool
	entry int
}

// IsOpen reports whether playback is active.
func (p *Player) IsOpen() bool { return p.open }

// Index returns the slide currently shown.
func (p *Player) Index() int { return p.index }

// Open starts playback at the given slide.
func (p *Player) Open(at int) {
	p.open = true
	p.entry = at
	p.index = at
}

// Close ends playback and returns the slide the editor should select,
// which is wherever playback ended up.
func (p *Player) Close() int {
	p.open = false
	return p.index
}

// Next advances one slide, clamped at the end. Returns true when the
// position changed.
func (p *Player) Next(total int) bool {
	if !p.open || p.index >= total-1 {
		return false
	}
	p.index++
	return true
}

// Prev steps one slide back, clamped at the start.
func (p *Player) Prev() bool {
	if !p.open || p.index <= 0 {
		return false
	}
	p.index--
	return true
}

// Goto jumps to an arbitrary slide, clamped into range.
func (p *Player) Goto(index, total int) bool {
	if !p.open {
		return false
	}
	if index < 0 {
		index = 0
	}
	if index > total-1 {
		index = total - 1
	}
	if index == p.index {
		return false
	}
	p.index = index
	return true
}

// Action is the playback command a key resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionPrev
	ActionNext
)

// HandleKey maps a keyboard key to a playback action. preventDefault is set
// for Space so the page does not scroll underneath the show.
func (p *Player) HandleKey(key string) (action Action, preventDefault bool) {
	if !p.open {
		return ActionNone, false
	}
	switch key {
	case "Escape":
		return ActionClose, false
	case "ArrowLeft":
		return ActionPrev, false
	case "ArrowRight":
		return ActionNext, false
	case " ":
		return ActionNext, true
	}
	return ActionNone, false
}

// SwapDelay is how long to wait before swapping in the next slide's content.
func SwapDelay(slide models.Slide) time.Duration {
	if slide.Transition == models.TransitionNone {
		return 0
	}
	return TransitionDuration
}
