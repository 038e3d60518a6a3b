package services

import (
	"context"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/session"
)

// AuthService signs the user in and out and probes the server.
type AuthService interface {
	Login(ctx context.Context, email, password string) (session.Snapshot, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

// Login returns the session state after the token was validated. A rejected
// login returns *client.AuthenticationError.
func (a *authService) Login(ctx context.Context, email, password string) (session.Snapshot, error) {
	s, err := session.FromContext(ctx)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := s.Login(ctx, email, password); err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

func (a *authService) Logout(ctx context.Context) error {
	s, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.Logout(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
