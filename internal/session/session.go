// Package session holds the mutable editing state of one deck: slides,
// selection, and a bounded undo history. All operations are safe for
// concurrent use; handlers share one Session per session id.
package session

import (
	"errors"
	"sync"

	"slidedeck/internal/layouts"
	"slidedeck/internal/models"
	"slidedeck/internal/normalize"
)

var (
	ErrIndexOutOfRange = errors.New("slide index out of range")
	ErrLastSlide       = errors.New("cannot delete the last slide")
	ErrUnknownLayout   = errors.New("unknown layout")
	ErrUnknownValue    = errors.New("unknown value")
	ErrInvalidReorder  = errors.New("reorder is not a permutation of slide indexes")
)

// Session is one user's editing state.
type Session struct {
	mu      sync.Mutex
	deck    models.Deck
	current int
	hist    *history
}

// New opens a session on the default starter deck.
func New() *Session {
	return FromDeck(layouts.DefaultDeck())
}

// FromDeck opens a session on an existing deck, e.g. an imported one. The
// given deck is the first history entry, so it is never undoable past.
func FromDeck(deck models.Deck) *Session {
	d := deck.Clone()
	if len(d.Slides) == 0 {
		d.Slides = []models.Slide{layouts.DefaultSlide()}
	}
	for i := range d.Slides {
		d.Slides[i].EnsureAnimations()
	}
	return &Session{
		deck: d,
		hist: newHistory(d.Slides, 0),
	}
}

// beginMutation stamps the live selection onto the history head. Called
// before any undoable change so undo lands on the selection as it was.
func (s *Session) beginMutation() {
	s.hist.setHeadIndex(s.current)
}

// record stores the post-mutation state as the new head of the history.
func (s *Session) record() {
	s.hist.push(s.deck.Slides, s.current)
}

// Deck returns a deep copy of the current deck.
func (s *Session) Deck() models.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Clone()
}

// CurrentIndex returns the selected slide index.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Slide returns a deep copy of the slide at index.
func (s *Session) Slide(index int) (models.Slide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.deck.Slides) {
		return models.Slide{}, ErrIndexOutOfRange
	}
	return s.deck.Slides[index].Clone(), nil
}

// SlideCount returns the number of slides.
func (s *Session) SlideCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deck.Slides)
}

// AddSlide inserts a default slide after the selection and selects it.
func (s *Session) AddSlide() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beginMutation()
	at := s.current + 1
	s.deck.Slides = append(s.deck.Slides[:at:at], append([]models.Slide{layouts.DefaultSlide()}, s.deck.Slides[at:]...)...)
	s.current = at
	s.record()
	return at
}

// DuplicateSlide copies the slide at index right after itself and selects
// the copy.
func (s *Session) DuplicateSlide(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.deck.Slides) {
		return 0, ErrIndexOutOfRange
	}
	s.beginMutation()
	copySlide := s.deck.Slides[index].Clone()
	at := index + 1
	s.deck.Slides = append(s.deck.Slides[:at:at], append([]models.Slide{copySlide}, s.deck.Slides[at:]...)...)
	s.current = at
	s.record()
	return at, nil
}

// DeleteSlide removes the slide at index. The last remaining slide cannot be
// deleted; the selection re-clamps to stay valid.
func (s *Session) DeleteSlide(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.deck.Slides) {
		return ErrIndexOutOfRange
	}
	if len(s.deck.Slides) <= 1 {
		return ErrLastSlide
	}
	s.beginMutation()
	s.deck.Slides = append(s.deck.Slides[:index], s.deck.Slides[index+1:]...)
	if s.current >= len(s.deck.Slides) {
		s.current = len(s.deck.Slides) - 1
	} else if s.current >= index && s.current > 0 {
		s.current--
	}
	s.record()
	return nil
}

// SetLayout switches the selected slide to another layout. The content is
// reset to that layout's defaults; the previous content remains reachable
// through undo only.
func (s *Session) SetLayout(layout models.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !layouts.IsKnown(layout) {
		return ErrUnknownLayout
	}
	s.beginMutation()
	slide := &s.deck.Slides[s.current]
	slide.Layout = layout
	slide.Content = layouts.DefaultContent(layout)
	s.record()
	return nil
}

// MoveSlide moves a slide from one position to another and selects it there.
func (s *Session) MoveSlide(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.deck.Slides)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	s.beginMutation()
	slide := s.deck.Slides[from]
	rest := append(s.deck.Slides[:from], s.deck.Slides[from+1:]...)
	s.deck.Slides = append(rest[:to:to], append([]models.Slide{slide}, rest[to:]...)...)
	s.current = to
	s.record()
	return nil
}

// Reorder rearranges all slides at once. order must be a permutation of the
// current indexes; the selection follows its slide to the new position.
func (s *Session) Reorder(order []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.deck.Slides)
	if len(order) != n {
		return ErrInvalidReorder
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return ErrInvalidReorder
		}
		seen[idx] = true
	}
	s.beginMutation()
	reordered := make([]models.Slide, n)
	newCurrent := s.current
	for pos, idx := range order {
		reordered[pos] = s.deck.Slides[idx]
		if idx == s.current {
			newCurrent = pos
		}
	}
	s.deck.Slides = reordered
	s.current = newCurrent
	s.record()
	return nil
}

// SetTransition sets the selected slide's transition.
func (s *Session) SetTransition(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !models.IsTransition(id) {
		return ErrUnknownValue
	}
	s.beginMutation()
	s.deck.Slides[s.current].Transition = id
	s.record()
	return nil
}

// SetElementAnimation sets the selected slide's entrance animation.
func (s *Session) SetElementAnimation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !models.IsElementAnimation(id) {
		return ErrUnknownValue
	}
	s.beginMutation()
	s.deck.Slides[s.current].ElementAnimation = id
	s.record()
	return nil
}

// SetContent writes edited content back onto the selected slide. The raw
// value is normalized against the slide's layout, so malformed fields degrade
// instead of corrupting the deck.
func (s *Session) SetContent(raw map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beginMutation()
	slide := &s.deck.Slides[s.current]
	slide.Content = normalize.Content(slide.Layout, raw)
	s.record()
}

// SetDeckTitle renames the deck. Title edits are not undoable.
func (s *Session) SetDeckTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck.Title = title
}

// ApplyGenerated replaces the whole deck with a generation result. The prior
// slides stay one undo step away.
func (s *Session) ApplyGenerated(deck models.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := deck.Clone()
	if len(d.Slides) == 0 {
		return
	}
	s.beginMutation()
	s.deck = d
	s.current = 0
	s.record()
}

// Select moves the selection without touching history.
func (s *Session) Select(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index >= len(s.deck.Slides) {
		index = len(s.deck.Slides) - 1
	}
	s.current = index
	return s.current
}

// Undo steps back one history entry. Returns false at the oldest state.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.hist.undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo reapplies an undone step. Returns false at the newest state.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.hist.redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) restore(snap snapshot) {
	s.deck.Slides = models.CloneSlides(snap.slides)
	s.current = snap.index
	if s.current >= len(s.deck.Slides) {
		s.current = len(s.deck.Slides) - 1
	}
}

// CanUndo reports whether an undo step exists.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.canUndo()
}

// CanRedo reports whether a redo step exists.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.canRedo()
}
