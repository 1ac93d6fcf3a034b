// Package session scopes the playback snapshot and the loaded page view to
// one browser, identified by a cookie.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"musicroom-web/internal/fetch"
	"musicroom-web/internal/page"
)

const CookieName = "musicroom_session"

// Session is the per-browser scope shared by all of its tabs.
type Session struct {
	ID string

	// View is the most recently mounted page; a newer mount supersedes
	// an older one still in flight.
	View fetch.Latest[page.View]

	mu       sync.Mutex
	lastSeen time.Time
}

// Controller binds p to this session's view.
func (s *Session) Controller(p page.Page, deps page.Deps) *page.Controller {
	return page.NewController(p, deps, &s.View)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Manager maps session ids to sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	secure   bool
	log      *zap.Logger
	onExpire []func(id string)

	now func() time.Time
}

func NewManager(ttl time.Duration, secure bool, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		secure:   secure,
		log:      log,
		now:      time.Now,
	}
}

// Get returns the session for id, creating it if needed.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{ID: id}
		m.sessions[id] = s
		m.log.Debug("session created", zap.String("session", id))
	}
	s.touch(m.now())
	return s
}

// Lookup returns an existing session without creating one.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// OnExpire registers fn to run with the id of every swept session, so
// state kept outside the manager can be released with it.
func (m *Manager) OnExpire(fn func(id string)) {
	m.mu.Lock()
	m.onExpire = append(m.onExpire, fn)
	m.mu.Unlock()
}

// FromRequest returns the request's session, issuing a new id when the
// request carries none or a malformed one. The cookie is written on every
// call so its lifetime slides with activity like the server-side expiry.
func (m *Manager) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	id := ""
	if c, err := r.Cookie(CookieName); err == nil {
		if u, err := uuid.Parse(c.Value); err == nil {
			id = u.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return m.Get(id)
}

// Sweep forgets sessions idle for longer than the ttl and runs the
// OnExpire hooks for each of them.
func (m *Manager) Sweep() int {
	now := m.now()
	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	hooks := m.onExpire
	m.mu.Unlock()

	for _, id := range expired {
		for _, fn := range hooks {
			fn(id)
		}
	}
	return len(expired)
}

// Run sweeps periodically until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(); n > 0 {
				m.log.Info("sessions expired", zap.Int("count", n))
			}
		}
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
