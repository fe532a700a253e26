package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
)

// SessionStore persists the logged-in user and token.
type SessionStore interface {
	SessionReader
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, u *models.User, token string) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
//   - Login authenticates and stores the session.
//   - Register creates an employee account; it does not log in.
//   - Logout forgets the session.
//   - Restore resumes a session stored by a previous run.
//   - Ping checks that the server answers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session SessionStore
}

func NewAuthService(c client.Client, session SessionStore) AuthService {
	return &authService{client: c, session: session}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Save(ctx, u, token); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

func (a *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	u, err := a.client.Register(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	return a.session.Clear(ctx)
}

// Restore returns the stored user, or nil when there is no stored session.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	u, err := a.session.CurrentUser(ctx)
	if err != nil || u == nil {
		return nil, err
	}

	token, err := a.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	a.client.SetAccessToken(token)

	return u, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
