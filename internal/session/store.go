package session

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CookieName is the browser cookie holding either the sealed values or the
// server-side session id.
const CookieName = "portal_session"

// Store persists sessions between requests.
type Store interface {
	// Load returns the session of the request, or a new empty one when the
	// request carries none. A returned error comes with a usable empty session.
	Load(ctx context.Context, r *http.Request) (*Session, error)
	// Save writes the session back when it changed.
	Save(ctx context.Context, w http.ResponseWriter, s *Session) error
}

// CookieOptions control the cookie written by every store.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

func (o CookieOptions) ttl() time.Duration {
	if o.TTL <= 0 {
		return 24 * time.Hour
	}
	return o.TTL
}

func (o CookieOptions) write(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(o.ttl().Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// backend is the key/value contract shared by the server-side stores.
type backend interface {
	get(ctx context.Context, id string) (map[string]string, bool, error)
	put(ctx context.Context, id string, values map[string]string, ttl time.Duration) error
	remove(ctx context.Context, id string) error
}

// serverStore keeps values in a backend and only the id in the cookie.
type serverStore struct {
	backend backend
	cookie  CookieOptions
}

func (s *serverStore) Load(ctx context.Context, r *http.Request) (*Session, error) {
	id := cookieValue(r)
	if id == "" {
		return New(), nil
	}
	values, ok, err := s.backend.get(ctx, id)
	if err != nil {
		return New(), err
	}
	if !ok {
		return New(), nil
	}
	return newWithValues(id, values), nil
}

func (s *serverStore) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if !sess.Dirty() {
		return nil
	}
	values := sess.Values()
	if len(values) == 0 {
		s.cookie.expire(w)
		if err := s.dropPrevious(ctx, sess); err != nil {
			return err
		}
		if err := s.backend.remove(ctx, sess.ID()); err != nil {
			return err
		}
		sess.markClean()
		return nil
	}
	if err := s.backend.put(ctx, sess.ID(), values, s.cookie.ttl()); err != nil {
		return err
	}
	if err := s.dropPrevious(ctx, sess); err != nil {
		return err
	}
	s.cookie.write(w, sess.ID())
	sess.markClean()
	return nil
}

// dropPrevious removes the entry a regenerated session used to live under.
func (s *serverStore) dropPrevious(ctx context.Context, sess *Session) error {
	prev := sess.previousID()
	if prev == "" || prev == sess.ID() {
		return nil
	}
	if err := s.backend.remove(ctx, prev); err != nil {
		return fmt.Errorf("session: drop previous id: %w", err)
	}
	return nil
}
