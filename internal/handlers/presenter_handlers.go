package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"slidedeck/internal/player"
	"slidedeck/internal/render"
	"slidedeck/internal/services"
	"slidedeck/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PresenterHandler drives the presentation player over a websocket
type PresenterHandler struct {
	store *services.SessionStore
}

// NewPresenterHandler creates a new presenter handler
func NewPresenterHandler(store *services.SessionStore) *PresenterHandler {
	return &PresenterHandler{
		store: store,
	}
}

// PresenterMessage is one client command on the presenter channel.
type PresenterMessage struct {
	Action string `json:"action"`
	Index  *int   `json:"index,omitempty"`
	Key    string `json:"key,omitempty"`
}

// PresenterState is the server's answer to every command.
type PresenterState struct {
	Open           bool   `json:"open"`
	Index          int    `json:"index"`
	Total          int    `json:"total"`
	HTML           string `json:"html,omitempty"`
	SwapDelayMs    int64  `json:"swapDelayMs"`
	PreventDefault bool   `json:"preventDefault,omitempty"`
}

// Present runs the presenter channel for one connection. Each connection
// owns its own player; the deck is read live from the session, so edits from
// the editor show up on the next navigation.
// GET /api/session/{id}/present/ws
func (h *PresenterHandler) Present(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade presenter connection: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("Presenter connected: session=%s", id)

	var p player.Player
	for {
		var msg PresenterMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Presenter read error: session=%s, err=%v", id, err)
			}
			return
		}

		state := h.apply(&p, sess, msg)
		if err := conn.WriteJSON(state); err != nil {
			log.Printf("Presenter write error: session=%s, err=%v", id, err)
			return
		}
	}
}

func (h *PresenterHandler) apply(p *player.Player, sess *session.Session, msg PresenterMessage) PresenterState {
	total := sess.SlideCount()

	switch msg.Action {
	case "open":
		// Without an explicit index the show starts at the editor selection.
		at := sess.CurrentIndex()
		if msg.Index != nil {
			at = *msg.Index
		}
		if at < 0 {
			at = 0
		}
		if at > total-1 {
			at = total - 1
		}
		p.Open(at)
	case "close":
		sess.Select(p.Close())
	case "next":
		p.Next(total)
	case "prev":
		p.Prev()
	case "goto":
		if msg.Index != nil {
			p.Goto(*msg.Index, total)
		}
	case "key":
		action, preventDefault := p.HandleKey(msg.Key)
		switch action {
		case player.ActionClose:
			sess.Select(p.Close())
		case player.ActionPrev:
			p.Prev()
		case player.ActionNext:
			p.Next(total)
		}
		state := h.stateOf(p, sess, total)
		state.PreventDefault = preventDefault
		return state
	}
	return h.stateOf(p, sess, total)
}

func (h *PresenterHandler) stateOf(p *player.Player, sess *session.Session, total int) PresenterState {
	state := PresenterState{
		Open:  p.IsOpen(),
		Index: p.Index(),
		Total: total,
	}
	if !p.IsOpen() {
		return state
	}
	slide, err := sess.Slide(p.Index())
	if err != nil {
		return state
	}
	state.HTML = render.Render(slide, render.ReadOnly).HTML()
	state.SwapDelayMs = player.SwapDelay(slide).Milliseconds()
	return state
}
