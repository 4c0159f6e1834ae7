package session

import (
	"sync"
	"time"

	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

// DefaultTTL is how long a login stays valid without re-authentication.
const DefaultTTL = time.Hour

// Session holds the current user identity. It is constructed once at
// application start and injected into every service that needs to react
// to login/logout. There is no token refresh; an expired session simply
// loads as logged-out.
type Session struct {
	mu        sync.Mutex
	store     *storage.Store
	user      *models.User
	listeners []func(*models.User)
	ttl       time.Duration
}

// New restores any persisted session. Expired sessions are dropped.
func New(store *storage.Store) *Session {
	s := &Session{store: store, ttl: DefaultTTL}
	saved := storage.GetJSON[*models.User](store, storage.KeyAuthUser, nil)
	if saved != nil && !expired(saved) {
		s.user = saved
	} else if saved != nil {
		store.Remove(storage.KeyAuthUser)
	}
	return s
}

func expired(u *models.User) bool {
	return u.ExpiresAt > 0 && time.Now().UnixMilli() > u.ExpiresAt
}

// OnChange registers a listener invoked with the new user (nil on
// logout) after every identity change.
func (s *Session) OnChange(fn func(*models.User)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Session) notify(u *models.User) {
	s.mu.Lock()
	listeners := make([]func(*models.User), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(u)
	}
}

// Login installs the authenticated user, filling defaults the backend
// may omit.
func (s *Session) Login(payload models.User) {
	if payload.Name == "" {
		payload.Name = "User"
	}
	if payload.Role == "" {
		payload.Role = models.RoleCustomer
	}
	payload.ExpiresAt = time.Now().Add(s.ttl).UnixMilli()

	s.mu.Lock()
	user := payload
	s.user = &user
	s.store.SetJSON(storage.KeyAuthUser, s.user)
	s.mu.Unlock()

	s.notify(s.Current())
}

// Logout clears the session.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.store.Remove(storage.KeyAuthUser)
	s.mu.Unlock()

	s.notify(nil)
}

// Current returns a copy of the logged-in user, or nil.
func (s *Session) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	if expired(s.user) {
		s.user = nil
		s.store.Remove(storage.KeyAuthUser)
		return nil
	}
	user := *s.user
	return &user
}

// Role returns the authorization role string, empty when logged out.
func (s *Session) Role() string {
	if u := s.Current(); u != nil {
		return u.Role
	}
	return ""
}

// IsAuthenticated reports whether a non-expired user is present.
func (s *Session) IsAuthenticated() bool {
	return s.Current() != nil
}

// UpdateUser applies a patch to the logged-in user and re-persists it.
// No-op when logged out.
func (s *Session) UpdateUser(patch func(*models.User)) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	patch(s.user)
	s.store.SetJSON(storage.KeyAuthUser, s.user)
	s.mu.Unlock()

	s.notify(s.Current())
}
