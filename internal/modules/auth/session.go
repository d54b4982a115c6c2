package auth

import (
	"context"
	"log"
	"sync"
)

// SessionManager tracks the active session for a single-user context (the
// seed tool and tests use it directly; the HTTP layer resolves sessions
// per request instead of sharing this state).
//
// Subscribers are notified on every session change, including the initial
// restore; each subscription returns a cancel function and is invoked once
// immediately with the current session.
type SessionManager struct {
	service *Service
	cache   SessionCache

	mu      sync.Mutex
	session *Session
	loading bool
	subs    map[int]func(*Session)
	nextSub int
}

// NewSessionManager creates a manager in the loading state; call Restore
// to finish initialization.
func NewSessionManager(service *Service, cache SessionCache) *SessionManager {
	return &SessionManager{
		service: service,
		cache:   cache,
		loading: true,
		subs:    make(map[int]func(*Session)),
	}
}

// Restore loads the cached session and revalidates it with the identity
// service. An invalid or missing cached session leaves the manager
// unauthenticated; either way Loading turns false.
func (m *SessionManager) Restore(ctx context.Context) {
	session, err := m.cache.Load()
	if err != nil {
		log.Printf("session_restore_failed error=%q", err)
		session = nil
	}

	if session != nil {
		user, err := m.service.Current(ctx, session.AccessToken)
		if err != nil {
			log.Printf("session_restore_rejected error=%q", err)
			_ = m.cache.Clear()
			session = nil
		} else {
			session.User = *user
		}
	}

	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
	m.set(session)
}

// Loading reports whether the initial restore is still in progress.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// IsAuthenticated reports whether a session is active.
func (m *SessionManager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// CurrentUser returns the active identity, or nil when unauthenticated.
func (m *SessionManager) CurrentUser() *Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	user := m.session.User
	return &user
}

// Login runs the login-or-register flow and reports success. On success the
// session is cached and subscribers fire; on failure the previous state is
// untouched.
func (m *SessionManager) Login(ctx context.Context, email, password string) bool {
	session, err := m.service.Login(ctx, email, password)
	if err != nil {
		log.Printf("login_failed email=%s error=%q", email, err)
		return false
	}

	if err := m.cache.Save(session); err != nil {
		log.Printf("session_cache_save_failed error=%q", err)
	}

	m.set(session)
	return true
}

// Logout signs out at the identity service and clears local state. A failed
// remote sign-out is logged; the local session is dropped regardless.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()

	if session != nil {
		if err := m.service.Logout(ctx, session.AccessToken); err != nil {
			log.Printf("logout_failed error=%q", err)
		}
	}

	if err := m.cache.Clear(); err != nil {
		log.Printf("session_cache_clear_failed error=%q", err)
	}

	m.set(nil)
}

// Subscribe registers a callback for session changes and invokes it once
// with the current session. The returned function cancels the subscription.
func (m *SessionManager) Subscribe(fn func(*Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	current := m.session
	m.mu.Unlock()

	fn(current)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *SessionManager) set(session *Session) {
	m.mu.Lock()
	m.session = session
	subs := make([]func(*Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
}
