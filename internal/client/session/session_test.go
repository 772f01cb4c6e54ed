package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phonomarket/phono/internal/client/localdb"
	"github.com/phonomarket/phono/internal/client/repositories/metadata"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	db, err := localdb.Open(context.Background(), "file:session_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Clear(context.Background()))
	return New(repo)
}

func TestSession_SetAndClear(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	require.False(t, s.LoggedIn())
	require.Equal(t, "", s.Token())

	require.NoError(t, s.SetTokens(ctx, "tok-123", "ref-456"))
	require.True(t, s.LoggedIn())
	require.Equal(t, "tok-123", s.Token())
	require.Equal(t, "ref-456", s.RefreshToken())

	require.NoError(t, s.Clear(ctx))
	require.False(t, s.LoggedIn())
	require.Equal(t, "", s.RefreshToken())
}

func TestSession_RestoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	db, err := localdb.Open(ctx, "file:session_restore_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()
	repo := metadata.NewSQLiteRepository(db)

	first := New(repo)
	require.NoError(t, first.SetTokens(ctx, "persisted", "renewable"))

	second := New(repo)
	require.Equal(t, "", second.Token())
	require.NoError(t, second.Restore(ctx))
	require.Equal(t, "persisted", second.Token())
	require.Equal(t, "renewable", second.RefreshToken())
}
