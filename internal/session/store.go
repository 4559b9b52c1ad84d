package session

import (
	"sync"
	"time"

	"github.com/fliprlabs/portfolio-api/internal/security"
)

// Session is the server-held state behind one session cookie.
type Session struct {
	Token         string    // Opaque token presented by the client.
	AdminID       uint64    // Owning administrator ID.
	Authenticated bool      // Whether the session passed login.
	CreatedAt     time.Time // Creation time; expiry is CreatedAt+TTL.
}

// Store keeps sessions in memory keyed by token. Expired entries are
// dropped lazily on access, there is no background sweep.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
}

// NewStore constructs a Store with a fixed time-to-live per session.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]Session),
	}
}

// Create issues a new authenticated session bound to an administrator.
func (s *Store) Create(adminID uint64) Session {
	sess := Session{
		Token:         security.NewSessionToken(),
		AdminID:       adminID,
		Authenticated: true,
		CreatedAt:     time.Now().UTC(),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for a token. Expired sessions are removed and
// reported as absent.
func (s *Store) Get(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if time.Since(sess.CreatedAt) > s.ttl {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Delete destroys the session for a token. Deleting an absent or already
// expired session is not an error.
func (s *Store) Delete(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
