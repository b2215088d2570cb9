package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/i474232898/weather-widget/internal/store"
	"github.com/i474232898/weather-widget/internal/view"
	"github.com/i474232898/weather-widget/internal/weather"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrInvalidID = errors.New("invalid session id")
)

// Session is one widget: a controller and the page it renders into.
type Session struct {
	ID      string
	Service *weather.Service
	View    *view.State

	prefs    *store.Preferences
	lastSeen *atomic.Int64
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Factory holds the dependencies shared by every session.
type Factory struct {
	Geocoder  weather.Geocoder
	Forecasts weather.ForecastSource
	Store     store.Store
	Latency   weather.Latency
}

// Registry keeps live sessions in memory. Unit preferences outlive a session
// in Store, so an evicted session can be restored by id.
type Registry struct {
	factory Factory
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(f Factory) *Registry {
	return &Registry{
		factory:  f,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session under a fresh id.
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open(uuid.NewString())
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	r.touch(s)
	return s, nil
}

// GetOrRestore returns the live session for id, or opens a new one under the
// same id so its stored preferences apply again.
func (r *Registry) GetOrRestore(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	id = parsed.String()

	if s, err := r.Get(id); err == nil {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		r.touch(s)
		return s, nil
	}
	log.Printf("INFO: restoring session %s", id)
	return r.open(id), nil
}

// Delete ends a session and forgets its preferences. Preferences of a
// session that was already evicted are forgotten too.
func (r *Registry) Delete(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}
	id = parsed.String()

	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	prefs := store.NewPreferences(r.factory.Store, id)
	if ok {
		prefs = s.prefs
	}
	return prefs.Forget()
}

// Reap drops sessions idle for longer than maxIdle and returns how many were
// dropped. Their preferences are kept.
func (r *Registry) Reap(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// open builds a session. Caller holds mu.
func (r *Registry) open(id string) *Session {
	state := view.NewState()
	prefs := store.NewPreferences(r.factory.Store, id)

	s := &Session{
		ID:       id,
		View:     state,
		prefs:    prefs,
		lastSeen: atomic.NewInt64(r.now().UnixNano()),
	}
	s.Service = weather.NewService(r.factory.Geocoder, r.factory.Forecasts, prefs, state, r.factory.Latency)

	r.sessions[id] = s
	return s
}

func (r *Registry) touch(s *Session) {
	s.lastSeen.Store(r.now().UnixNano())
}
