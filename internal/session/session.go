package session

import (
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Keys persisted in a session.
const (
	KeyRole   = "userRole"
	KeyToken  = "token"
	KeyNotice = "notice"
)

// Session is the per-browser key/value state. It is loaded once per request
// by a Store and written back by the same Store.
type Session struct {
	mu       sync.Mutex
	id       string
	previous string // id replaced by Regenerate, not yet dropped from the store
	values   map[string]string
	dirty    bool
}

// New returns an empty session with a fresh id.
func New() *Session {
	return &Session{id: uuid.NewString(), values: map[string]string{}}
}

func newWithValues(id string, values map[string]string) *Session {
	if values == nil {
		values = map[string]string{}
	}
	return &Session{id: id, values: values}
}

// ID identifies the session in server-side stores.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Regenerate moves the session to a fresh id. Server-side stores drop the
// old id on the next Save, so a cookie planted before login stops working.
func (s *Session) Regenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.previous == "" {
		s.previous = s.id
	}
	s.id = uuid.NewString()
	s.dirty = true
}

func (s *Session) previousID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previous
}

func (s *Session) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.values[key]; ok && cur == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Role returns the stored role. An unrecognized value is reported as
// RoleNone together with ErrUnknownRole.
func (s *Session) Role() (Role, error) {
	v, _ := s.Get(KeyRole)
	return ParseRole(v)
}

func (s *Session) SetRole(role Role) {
	if role == RoleNone {
		s.ClearRole()
		return
	}
	s.Set(KeyRole, role.String())
}

func (s *Session) ClearRole() { s.Delete(KeyRole) }

// Token returns the stored token, empty when absent.
func (s *Session) Token() string {
	v, _ := s.Get(KeyToken)
	return v
}

func (s *Session) SetToken(token string) {
	if token == "" {
		s.Delete(KeyToken)
		return
	}
	s.Set(KeyToken, token)
}

// Clear removes every key, including a pending notice.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return
	}
	s.values = map[string]string{}
	s.dirty = true
}

// Flash stores a notice shown on the next full page render.
func (s *Session) Flash(notice string) {
	if notice == "" {
		return
	}
	s.Set(KeyNotice, notice)
}

// TakeNotice returns and removes the pending notice.
func (s *Session) TakeNotice() string {
	v, ok := s.Get(KeyNotice)
	if !ok {
		return ""
	}
	s.Delete(KeyNotice)
	return v
}

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Values returns a copy of the stored values.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

func (s *Session) markClean() {
	s.mu.Lock()
	s.dirty = false
	s.previous = ""
	s.mu.Unlock()
}
