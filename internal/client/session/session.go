// Package session keeps the authenticated user's tokens, persisting them in
// the local metadata store so a restart does not log the user out.
package session

import (
	"context"
	"sync"

	"github.com/phonomarket/phono/internal/client/repositories/metadata"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

type Session struct {
	repo metadata.Repository

	mu      sync.RWMutex
	token   string
	refresh string
}

func New(repo metadata.Repository) *Session {
	return &Session{repo: repo}
}

// Restore loads previously saved tokens, if any.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.repo.Get(ctx, accessTokenKey)
	if err != nil {
		return err
	}
	refresh, err := s.repo.Get(ctx, refreshTokenKey)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = string(token)
	s.refresh = string(refresh)
	s.mu.Unlock()
	return nil
}

// Token implements api.TokenSource. It returns "" when not logged in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// RefreshToken returns the stored refresh token, or "" when none was issued.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// SetTokens stores the pair in memory and persists it. An empty refresh token
// is stored as-is; the caller then simply cannot renew.
func (s *Session) SetTokens(ctx context.Context, token, refresh string) error {
	if err := s.repo.Set(ctx, accessTokenKey, []byte(token)); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, refreshTokenKey, []byte(refresh)); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.refresh = refresh
	s.mu.Unlock()
	return nil
}

// Clear forgets both tokens, in memory and on disk.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, accessTokenKey); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, refreshTokenKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = ""
	s.refresh = ""
	s.mu.Unlock()
	return nil
}
