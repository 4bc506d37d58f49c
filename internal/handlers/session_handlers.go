package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"slidedeck/internal/models"
	"slidedeck/internal/render"
	"slidedeck/internal/services"
	"slidedeck/internal/session"
)

// SessionHandler handles HTTP requests for editing sessions
type SessionHandler struct {
	store *services.SessionStore
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *services.SessionStore) *SessionHandler {
	return &SessionHandler{
		store: store,
	}
}

// SessionState is the deck state returned after every session operation.
type SessionState struct {
	SessionID    string      `json:"sessionId,omitempty"`
	Deck         models.Deck `json:"deck"`
	CurrentIndex int         `json:"currentIndex"`
	SlideCount   int         `json:"slideCount"`
	CanUndo      bool        `json:"canUndo"`
	CanRedo      bool        `json:"canRedo"`
}

func stateOf(sess *session.Session) SessionState {
	return SessionState{
		Deck:         sess.Deck(),
		CurrentIndex: sess.CurrentIndex(),
		SlideCount:   sess.SlideCount(),
		CanUndo:      sess.CanUndo(),
		CanRedo:      sess.CanRedo(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sessionFromRequest resolves the {id} route var. Writes a 404 and returns
// false when the session does not exist.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, store *services.SessionStore) (*session.Session, string, bool) {
	id := mux.Vars(r)["id"]
	sess, ok := store.Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, "", false
	}
	return sess, id, true
}

func (h *SessionHandler) getSession(w http.ResponseWriter, r *http.Request) (*session.Session, string, bool) {
	return sessionFromRequest(w, r, h.store)
}

// slideIndex resolves the {index} route var against the session. Writes a 404
// and returns false when out of range.
func (h *SessionHandler) slideIndex(w http.ResponseWriter, r *http.Request, sess *session.Session) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 || index >= sess.SlideCount() {
		http.Error(w, "slide index out of range", http.StatusNotFound)
		return 0, false
	}
	return index, true
}

// CreateSessionRequest optionally seeds the session from an existing deck.
type CreateSessionRequest struct {
	Deck *models.Deck `json:"deck,omitempty"`
}

// CreateSession opens a new editing session
// POST /api/session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.Body != nil {
		// An empty or absent body means the default starter deck.
		json.NewDecoder(r.Body).Decode(&req)
	}

	var id string
	var sess *session.Session
	if req.Deck != nil && len(req.Deck.Slides) > 0 {
		id, sess = h.store.CreateFromDeck(*req.Deck)
	} else {
		id, sess = h.store.Create()
	}

	state := stateOf(sess)
	state.SessionID = id
	writeJSON(w, http.StatusCreated, state)
}

// GetSession returns the full session state
// GET /api/session/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.getSession(w, r)
	if !ok {
		return
	}
	state := stateOf(sess)
	state.SessionID = id
	writeJSON(w, http.StatusOK, state)
}

// DeleteSession drops a session
// DELETE /api/session/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.getSession(w, r)
	if !ok {
		return
	}
	h.store.Delete(id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddSlideRequest optionally names the slide to insert after; the selection
// is used otherwise.
type AddSlideRequest struct {
	Index *int `json:"index,omitempty"`
}

// AddSlide inserts a default slide after the selection and selects it
// POST /api/session/{id}/slides
func (h *SessionHandler) AddSlide(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req AddSlideRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Index != nil {
		sess.Select(*req.Index)
	}
	sess.AddSlide()
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// DuplicateSlide copies a slide in place
// POST /api/session/{id}/slides/{index}/duplicate
func (h *SessionHandler) DuplicateSlide(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}
	if _, err := sess.DuplicateSlide(index); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// DeleteSlideResponse reports whether the slide was actually removed; the
// last remaining slide never is.
type DeleteSlideResponse struct {
	Deleted bool `json:"deleted"`
	SessionState
}

// DeleteSlide removes a slide
// DELETE /api/session/{id}/slides/{index}
func (h *SessionHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}
	deleted := true
	if err := sess.DeleteSlide(index); err != nil {
		if !errors.Is(err, session.ErrLastSlide) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		deleted = false
	}
	writeJSON(w, http.StatusOK, DeleteSlideResponse{Deleted: deleted, SessionState: stateOf(sess)})
}

// SetLayoutRequest names the target layout.
type SetLayoutRequest struct {
	Layout string `json:"layout"`
}

// SetLayout switches a slide's layout, resetting its content to defaults
// PUT /api/session/{id}/slides/{index}/layout
func (h *SessionHandler) SetLayout(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}
	var req SetLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	sess.Select(index)
	if err := sess.SetLayout(models.Layout(req.Layout)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// SetContentRequest carries the edited content fields as loose JSON; the
// session normalizes them against the slide's layout.
type SetContentRequest struct {
	Content map[string]any `json:"content"`
}

// SetContent writes edited content back onto a slide
// PUT /api/session/{id}/slides/{index}/content
func (h *SessionHandler) SetContent(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}
	var req SetContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Content == nil {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}
	sess.Select(index)
	sess.SetContent(req.Content)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// SetTransitionRequest names the slide transition.
type SetTransitionRequest struct {
	Transition string `json:"transition"`
}

// SetTransition sets a slide's transition
// PUT /api/session/{id}/slides/{index}/transition
func (h *SessionHandler) SetTransition(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}
	var req SetTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	sess.Select(index)
	if err := sess.SetTransition(req.Transition); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// SetElementAnimationRequest names the entrance animation.
type SetElementAnimationRequest struct {
	ElementAnimation string `json:"elementAnimation"`
}

// SetElementAnimation sets a slide's entrance animation
// PUT /api/session/{id}/slides/{index}/element-animation
func (h *SessionHandler) SetElementAnimation(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}
	var req SetElementAnimationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	sess.Select(index)
	if err := sess.SetElementAnimation(req.ElementAnimation); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// MoveSlideRequest moves a slide one step in either direction.
type MoveSlideRequest struct {
	Direction string `json:"direction"`
}

// MoveSlideResponse reports whether the slide actually moved; moves off
// either end are no-ops.
type MoveSlideResponse struct {
	Moved bool `json:"moved"`
	SessionState
}

// MoveSlide moves a slide up or down by one position
// POST /api/session/{id}/slides/{index}/move
func (h *SessionHandler) MoveSlide(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}
	var req MoveSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var to int
	switch req.Direction {
	case "up":
		to = index - 1
	case "down":
		to = index + 1
	default:
		http.Error(w, "direction must be up or down", http.StatusBadRequest)
		return
	}

	moved := true
	if to < 0 || to >= sess.SlideCount() {
		moved = false
	} else if err := sess.MoveSlide(index, to); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, MoveSlideResponse{Moved: moved, SessionState: stateOf(sess)})
}

// ReorderRequest either moves one slide between positions (drag and drop) or
// applies a full permutation of the deck.
type ReorderRequest struct {
	From  *int  `json:"from,omitempty"`
	To    *int  `json:"to,omitempty"`
	Order []int `json:"order,omitempty"`
}

// ReorderSlides rearranges the deck
// POST /api/session/{id}/slides/reorder
func (h *SessionHandler) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var err error
	switch {
	case len(req.Order) > 0:
		err = sess.Reorder(req.Order)
	case req.From != nil && req.To != nil:
		err = sess.MoveSlide(*req.From, *req.To)
	default:
		http.Error(w, "either order or from/to is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// SelectSlideRequest names the slide to select.
type SelectSlideRequest struct {
	Index int `json:"index"`
}

// SelectSlide moves the selection without touching history
// POST /api/session/{id}/select
func (h *SessionHandler) SelectSlide(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req SelectSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	sess.Select(req.Index)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// SetTitleRequest renames the deck.
type SetTitleRequest struct {
	Title string `json:"title"`
}

// SetTitle renames the deck
// PUT /api/session/{id}/title
func (h *SessionHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req SetTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	sess.SetDeckTitle(req.Title)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

// UndoRedoResponse reports whether a history step was applied.
type UndoRedoResponse struct {
	Applied bool `json:"applied"`
	SessionState
}

// Undo steps the session back one history entry
// POST /api/session/{id}/undo
func (h *SessionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	applied := sess.Undo()
	writeJSON(w, http.StatusOK, UndoRedoResponse{Applied: applied, SessionState: stateOf(sess)})
}

// Redo reapplies an undone step
// POST /api/session/{id}/redo
func (h *SessionHandler) Redo(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	applied := sess.Redo()
	writeJSON(w, http.StatusOK, UndoRedoResponse{Applied: applied, SessionState: stateOf(sess)})
}

// RenderSlide returns one slide's HTML
// GET /api/session/{id}/slides/{index}/render?mode=edit|present
func (h *SessionHandler) RenderSlide(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.getSession(w, r)
	if !ok {
		return
	}
	index, ok := h.slideIndex(w, r, sess)
	if !ok {
		return
	}

	mode := render.Editable
	switch r.URL.Query().Get("mode") {
	case "", "edit":
	case "present":
		mode = render.ReadOnly
	default:
		http.Error(w, "mode must be edit or present", http.StatusBadRequest)
		return
	}

	slide, err := sess.Slide(index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(render.Render(slide, mode).HTML())); err != nil {
		log.Printf("Failed to write rendered slide: %v", err)
	}
}
