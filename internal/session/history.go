package session

import "slidedeck/internal/models"

// MaxHistory is the number of undoable steps a session retains.
const MaxHistory = 50

// snapshot is one point on the undo timeline. Slides and index are deep,
// alias-free copies so later edits can never leak into stored states.
type snapshot struct {
	slides []models.Slide
	index  int
}

func takeSnapshot(slides []models.Slide, index int) snapshot {
	return snapshot{slides: models.CloneSlides(slides), index: index}
}

// history is a bounded timeline of states. entries[cursor] always holds the
// current state, so undo depth is len(entries)-1 capped at MaxHistory.
type history struct {
	entries []snapshot
	cursor  int
}

func newHistory(slides []models.Slide, index int) *history {
	return &history{entries: []snapshot{takeSnapshot(slides, index)}}
}

// push records the state after a mutation. Redo states beyond the cursor are
// discarded, and the oldest entry is evicted once the undo depth would exceed
// MaxHistory.
func (h *history) push(slides []models.Slide, index int) {
	h.entries = h.entries[:h.cursor+1]
	h.entries = append(h.entries, takeSnapshot(slides, index))
	if len(h.entries) > MaxHistory+1 {
		n := copy(h.entries, h.entries[1:])
		h.entries[n] = snapshot{}
		h.entries = h.entries[:n]
	}
	h.cursor = len(h.entries) - 1
}

// setHeadIndex records the live selection on the current entry. Selection
// moves without snapshots, so the head is brought up to date right before a
// mutation pushes a new entry; undo then restores the selection the user had.
func (h *history) setHeadIndex(index int) {
	h.entries[h.cursor].index = index
}

func (h *history) canUndo() bool { return h.cursor > 0 }
func (h *history) canRedo() bool { return h.cursor < len(h.entries)-1 }

func (h *history) undo() (snapshot, bool) {
	if !h.canUndo() {
		return snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

func (h *history) redo() (snapshot, bool) {
	if !h.canRedo() {
		return snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}
