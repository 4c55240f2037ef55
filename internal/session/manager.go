package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"optionlab/internal/uuid"
)

// Manager creates, loads and destroys sessions and their cookies.
type Manager struct {
	store  Store
	codec  *CookieCodec
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// Options configures a Manager.
type Options struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

// NewManager creates a Manager over store.
func NewManager(store Store, opts Options) *Manager {
	return &Manager{
		store:  store,
		codec:  NewCookieCodec(opts.Secret, opts.TTL),
		ttl:    opts.TTL,
		secure: opts.Secure,
		now:    time.Now,
	}
}

// Create assigns a fresh ID and expiry to s and stores it.
func (m *Manager) Create(ctx context.Context, s *Session) error {
	id, err := uuid.NewSessionID()
	if err != nil {
		return err
	}

	now := m.now()
	s.ID = id
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)

	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load returns the session referenced by the request's cookie. Missing,
// tampered and expired cookies all yield ErrNotFound.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNotFound
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		return nil, ErrNotFound
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy deletes the session from the store.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// SetCookie writes the signed session cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, s *Session) error {
	value, err := m.codec.Encode(s.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie in the browser.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Secure reports whether cookies are marked Secure.
func (m *Manager) Secure() bool {
	return m.secure
}
