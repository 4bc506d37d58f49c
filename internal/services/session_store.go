package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"slidedeck/internal/models"
	"slidedeck/internal/session"
)

const (
	// DefaultSessionTTL is how long an untouched session survives.
	DefaultSessionTTL = 2 * time.Hour

	sweepInterval = 5 * time.Minute
)

type sessionEntry struct {
	sess       *session.Session
	lastAccess time.Time
}

// SessionStore manages editing sessions in memory, keyed by id. Idle sessions
// are dropped by the sweeper goroutine after the TTL.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

// NewSessionStore creates a new session store
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
	}
}

// Create starts a new session seeded with the default deck.
func (s *SessionStore) Create() (string, *session.Session) {
	return s.put(session.New())
}

// CreateFromDeck starts a new session from an existing deck.
func (s *SessionStore) CreateFromDeck(deck models.Deck) (string, *session.Session) {
	return s.put(session.FromDeck(deck))
}

func (s *SessionStore) put(sess *session.Session) (string, *session.Session) {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &sessionEntry{sess: sess, lastAccess: time.Now()}

	log.Printf("Session created: id=%s, total=%d", id, len(s.sessions))
	return id, sess
}

// Get returns the session and refreshes its idle timer.
func (s *SessionStore) Get(id string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[id]
	if !exists {
		return nil, false
	}
	entry.lastAccess = time.Now()
	return entry.sess, true
}

// Delete removes a session
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		delete(s.sessions, id)
		log.Printf("Session deleted: id=%s, total=%d", id, len(s.sessions))
	}
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run sweeps idle sessions forever. Start it as a goroutine.
func (s *SessionStore) Run() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.sweep(time.Now())
	}
}

func (s *SessionStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		if now.Sub(entry.lastAccess) > s.ttl {
			delete(s.sessions, id)
			log.Printf("Session expired: id=%s, idle=%s", id, now.Sub(entry.lastAccess).Round(time.Second))
		}
	}
}
