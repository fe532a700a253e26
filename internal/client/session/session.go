// Package session resolves the logged-in user from the CLI's persisted
// key/value storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/client/repositories/metadata"
)

const (
	KeyUser  = "user"
	KeyToken = "jwt"
)

// Accessor reads and writes the session entries of a metadata.Repository.
type Accessor struct {
	storage metadata.Repository
}

func NewAccessor(storage metadata.Repository) *Accessor {
	return &Accessor{storage: storage}
}

// CurrentUser returns the user stored under "user", or nil when no session
// exists.
func (a *Accessor) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, ok, err := a.storage.GetItem(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &u, nil
}

// Token returns the stored access token, or "" without a session.
func (a *Accessor) Token(ctx context.Context) (string, error) {
	tok, _, err := a.storage.GetItem(ctx, KeyToken)
	return tok, err
}

func (a *Accessor) Save(ctx context.Context, u *models.User, token string) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := a.storage.SetItem(ctx, KeyUser, string(raw)); err != nil {
		return err
	}
	return a.storage.SetItem(ctx, KeyToken, token)
}

func (a *Accessor) Clear(ctx context.Context) error {
	if err := a.storage.RemoveItem(ctx, KeyUser); err != nil {
		return err
	}
	return a.storage.RemoveItem(ctx, KeyToken)
}
