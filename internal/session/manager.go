package session

import (
	"errors"
	"fmt"
	"time"

	"estateadmin/internal/domain"
	"estateadmin/internal/repos"
)

// Clock lets tests pin the instant tokens are checked against.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Session is a restored admin session: who is signed in and the bearer token
// to call the listing API with.
type Session struct {
	Principal *domain.Principal
	Token     string
}

// Manager owns the lifecycle of admin sessions: restore on every request,
// login, logout, and expiry.
type Manager struct {
	Store  *repos.SessionRepo
	Sealer *Sealer
	Clock  Clock
}

func NewManager(store *repos.SessionRepo, sealer *Sealer) *Manager {
	return &Manager{Store: store, Sealer: sealer, Clock: realClock{}}
}

// Restore returns the session bound to sid. Missing, expired, tampered, or
// undecodable tokens yield domain.ErrNoSession and are removed from the
// store; only storage failures are returned as other errors.
func (m *Manager) Restore(sid string) (*Session, error) {
	if sid == "" {
		return nil, domain.ErrNoSession
	}
	row, err := m.Store.Get(sid)
	if err != nil {
		return nil, err
	}
	token, err := m.Sealer.Open(row.Token)
	if err != nil {
		return nil, m.discard(sid, err)
	}
	p, err := Decode(token, m.Clock.Now())
	if err != nil {
		return nil, m.discard(sid, err)
	}
	_ = m.Store.Touch(sid)
	return &Session{Principal: p, Token: token}, nil
}

func (m *Manager) discard(sid string, cause error) error {
	if err := m.Store.Delete(sid); err != nil {
		return fmt.Errorf("discard session: %w", err)
	}
	return fmt.Errorf("%w: %v", domain.ErrNoSession, cause)
}

// Login decodes token and, if it is usable, persists it for sid.
func (m *Manager) Login(sid, token string) (*Session, error) {
	p, err := Decode(token, m.Clock.Now())
	if err != nil {
		return nil, err
	}
	sealed, err := m.Sealer.Seal(token)
	if err != nil {
		return nil, err
	}
	if err := m.Store.Save(sid, sealed, p.ID, p.ExpiresAt); err != nil {
		return nil, err
	}
	return &Session{Principal: p, Token: token}, nil
}

func (m *Manager) Logout(sid string) error {
	if sid == "" {
		return nil
	}
	return m.Store.Delete(sid)
}

// PurgeExpired drops every stored session whose token has expired and
// returns their sids.
func (m *Manager) PurgeExpired() ([]string, error) {
	return m.Store.DeleteExpired(m.Clock.Now())
}

// IsNoSession reports whether err means "treat the caller as signed out".
func IsNoSession(err error) bool { return errors.Is(err, domain.ErrNoSession) }
