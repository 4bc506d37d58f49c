package models

import (
	"encoding/json"
	"fmt"
)

// Layout identifies one of the fixed slide layouts.
type Layout string

const (
	LayoutHero          Layout = "hero"
	LayoutTitle         Layout = "title"
	LayoutTitleSubtitle Layout = "title-subtitle"
	LayoutBullet        Layout = "bullet"
	LayoutTimeline      Layout = "timeline"
	LayoutTwoColumn     Layout = "two-column"
	LayoutBigNumber     Layout = "big-number"
	LayoutStatsRow      Layout = "stats-row"
	LayoutQuote         Layout = "quote"
	LayoutSection       Layout = "section"
	LayoutImageText     Layout = "image-text"
)

// Transitions between slides.
const (
	TransitionNone    = "none"
	TransitionFade    = "fade"
	TransitionSlide   = "slide"
	TransitionZoom    = "zoom"
	TransitionConvex  = "convex"
	TransitionConcave = "concave"
)

// Entrance animations for slide elements.
const (
	AnimationNone      = "none"
	AnimationFade      = "fade"
	AnimationSlideUp   = "slideUp"
	AnimationSlideLeft = "slideLeft"
	AnimationZoom      = "zoom"
)

var transitions = map[string]bool{
	TransitionNone: true, TransitionFade: true, TransitionSlide: true,
	TransitionZoom: true, TransitionConvex: true, TransitionConcave: true,
}

var elementAnimations = map[string]bool{
	AnimationNone: true, AnimationFade: true, AnimationSlideUp: true,
	AnimationSlideLeft: true, AnimationZoom: true,
}

// IsTransition reports whether id is a known slide transition.
func IsTransition(id string) bool {
	return transitions[id]
}

// IsElementAnimation reports whether id is a known element animation.
func IsElementAnimation(id string) bool {
	return elementAnimations[id]
}

// BrandColors carries validated hex colors extracted from a generation
// response or an attached identity manual.
type BrandColors struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// Deck is the full in-memory presentation.
type Deck struct {
	Title       string       `json:"deckTitle"`
	Slides      []Slide      `json:"slides"`
	BrandColors *BrandColors `json:"brandColors,omitempty"`
	TemplateID  string       `json:"templateId,omitempty"`
}

// Clone returns a deep, alias-free copy of the deck.
func (d Deck) Clone() Deck {
	out := d
	out.Slides = CloneSlides(d.Slides)
	if d.BrandColors != nil {
		bc := *d.BrandColors
		out.BrandColors = &bc
	}
	return out
}

// Slide is one slide of the deck. Content's concrete type is fully
// determined by Layout.
type Slide struct {
	Layout           Layout  `json:"layout"`
	Content          Content `json:"content"`
	Transition       string  `json:"transition"`
	ElementAnimation string  `json:"elementAnimation"`
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	if s.Content != nil {
		out.Content = s.Content.Clone()
	}
	return out
}

// CloneSlides deep-copies a slide sequence.
func CloneSlides(slides []Slide) []Slide {
	out := make([]Slide, len(slides))
	for i, s := range slides {
		out[i] = s.Clone()
	}
	return out
}

// EnsureAnimations fills missing transition/animation with the defaults.
func (s *Slide) EnsureAnimations() {
	if !IsTransition(s.Transition) {
		s.Transition = TransitionFade
	}
	if !IsElementAnimation(s.ElementAnimation) {
		s.ElementAnimation = AnimationFade
	}
}

type slideJSON struct {
	Layout           Layout          `json:"layout"`
	Content          json.RawMessage `json:"content"`
	Transition       string          `json:"transition,omitempty"`
	ElementAnimation string          `json:"elementAnimation,omitempty"`
}

// MarshalJSON emits the wire shape {layout, content, transition, elementAnimation}.
func (s Slide) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(s.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(slideJSON{
		Layout:           s.Layout,
		Content:          content,
		Transition:       s.Transition,
		ElementAnimation: s.ElementAnimation,
	})
}

// UnmarshalJSON decodes a slide, dispatching the content type on the layout
// tag. An unknown layout degrades to "title" rather than failing the deck.
func (s *Slide) UnmarshalJSON(data []byte) error {
	var raw slideJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode slide: %w", err)
	}
	layout := raw.Layout
	content := NewContent(layout)
	if content == nil {
		layout = LayoutTitle
		content = NewContent(layout)
	}
	if len(raw.Content) > 0 {
		if err := json.Unmarshal(raw.Content, content); err != nil {
			return fmt.Errorf("failed to decode %s content: %w", layout, err)
		}
	}
	s.Layout = layout
	s.Content = content
	s.Transition = raw.Transition
	s.ElementAnimation = raw.ElementAnimation
	s.EnsureAnimations()
	return nil
}
