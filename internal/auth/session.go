package auth

import (
	"context"
	"sync"
	"time"

	"github.com/pennywise/client/internal/models"
	"github.com/rs/zerolog"
)

// Session holds the credential obtained from the identity provider and
// implements the logout-and-reprompt policy for rejected credentials.
type Session struct {
	mu       sync.RWMutex
	token    string
	user     models.User
	reprompt func(ctx context.Context)
	now      func() time.Time
	log      zerolog.Logger
}

// NewSession creates a session. reprompt is called after a logout caused by
// a 401 and may be nil.
func NewSession(token string, reprompt func(ctx context.Context), log zerolog.Logger) *Session {
	s := &Session{reprompt: reprompt, now: time.Now, log: log}
	s.Login(token)
	return s
}

// Login replaces the current credential.
func (s *Session) Login(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = Inspect(token)
}

// Logout drops the credential.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = models.User{}
}

// LoggedIn reports whether a usable credential is held.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !s.user.Expired(s.now())
}

// User returns the identity carried by the current credential.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

// Token implements TokenSource. Expired tokens are refused locally so the
// request is never sent.
func (s *Session) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	if s.user.Expired(s.now()) {
		return "", ErrTokenExpired
	}
	return s.token, nil
}

// HandleUnauthorized logs the session out and asks for credentials again.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	user, _ := s.User()
	s.log.Warn().Str("user_id", user.ID).Msg("Credential rejected, logging out")
	s.Logout()
	if s.reprompt != nil {
		s.reprompt(ctx)
	}
}
