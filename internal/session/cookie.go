package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
)

// ErrInvalidCookie is returned when a session cookie cannot be opened.
var ErrInvalidCookie = errors.New("session: invalid session cookie")

const nonceSize = 24

type sealedPayload struct {
	Values    map[string]string `json:"v"`
	ExpiresAt int64             `json:"e"`
}

// CookieStore keeps the whole session inside a sealed browser cookie, so the
// portal itself stays stateless.
type CookieStore struct {
	key    [32]byte
	cookie CookieOptions
	now    func() time.Time
}

// NewCookieStore derives the sealing key from secret.
func NewCookieStore(secret string, cookie CookieOptions) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session: cookie store requires a secret")
	}
	return &CookieStore{key: sha256.Sum256([]byte(secret)), cookie: cookie, now: time.Now}, nil
}

func (c *CookieStore) Load(_ context.Context, r *http.Request) (*Session, error) {
	raw := cookieValue(r)
	if raw == "" {
		return New(), nil
	}
	payload, err := c.open(raw)
	if err != nil {
		return New(), err
	}
	if c.now().Unix() > payload.ExpiresAt {
		return New(), nil
	}
	return newWithValues("", payload.Values), nil
}

func (c *CookieStore) Save(_ context.Context, w http.ResponseWriter, s *Session) error {
	if !s.Dirty() {
		return nil
	}
	values := s.Values()
	if len(values) == 0 {
		c.cookie.expire(w)
		s.markClean()
		return nil
	}
	sealed, err := c.seal(sealedPayload{Values: values, ExpiresAt: c.now().Add(c.cookie.ttl()).Unix()})
	if err != nil {
		return err
	}
	c.cookie.write(w, sealed)
	s.markClean()
	return nil
}

func (c *CookieStore) seal(payload sealedPayload) (string, error) {
	plain, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("session: encode cookie: %w", err)
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("session: generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], plain, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (c *CookieStore) open(raw string) (sealedPayload, error) {
	var payload sealedPayload
	box, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return payload, ErrInvalidCookie
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &c.key)
	if !ok {
		return payload, ErrInvalidCookie
	}
	if err := json.Unmarshal(plain, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	return payload, nil
}
