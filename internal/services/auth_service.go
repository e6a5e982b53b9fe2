package services

import (
	"errors"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/session"
	"estateadmin/internal/staging"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService signs admins in against the listing API and binds the issued
// token to the browser session.
type AuthService struct {
	API      *apiclient.Client
	Sessions *session.Manager
	Staging  *staging.Registry
}

func NewAuthService(api *apiclient.Client, sessions *session.Manager, stage *staging.Registry) *AuthService {
	return &AuthService{API: api, Sessions: sessions, Staging: stage}
}

func (s *AuthService) Login(sid, email, password string) (*session.Session, error) {
	token, err := s.API.Login(email, password)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	// a token the dashboard cannot decode is as good as no token
	return s.Sessions.Login(sid, token)
}

func (s *AuthService) Logout(sid string) error {
	if s.Staging != nil {
		s.Staging.DiscardSession(sid)
	}
	return s.Sessions.Logout(sid)
}

// Current restores the session for sid; session.IsNoSession reports the
// signed-out case.
func (s *AuthService) Current(sid string) (*session.Session, error) {
	return s.Sessions.Restore(sid)
}
