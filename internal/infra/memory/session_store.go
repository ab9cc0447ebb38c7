package memory

import (
	"sync"

	"technohunter_bot/internal/domain/form"
)

// SessionStore holds the bot-side form session of each user.
type SessionStore struct {
	mu       sync.Mutex
	catalog  *form.Catalog
	sessions map[int64]*form.Session
}

func NewSessionStore(catalog *form.Catalog) *SessionStore {
	return &SessionStore{
		catalog:  catalog,
		sessions: make(map[int64]*form.Session),
	}
}

// Reset replaces the user's session with a fresh one in branch selection.
func (s *SessionStore) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = form.NewSession(s.catalog)
}

// With runs fn on the user's session, creating one if needed. Calls for
// all users are serialised, so fn must not block on I/O.
func (s *SessionStore) With(userID int64, fn func(*form.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = form.NewSession(s.catalog)
		s.sessions[userID] = sess
	}
	return fn(sess)
}

func (s *SessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}

func (s *SessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
