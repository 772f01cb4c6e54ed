package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadata_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value BLOB); DELETE FROM metadata;`)
	require.NoError(t, err)
	return db
}

func TestSetGet(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "access_token", []byte("tok-1")))
	got, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), got)

	// Upsert replaces the value.
	require.NoError(t, r.Set(ctx, "access_token", []byte("tok-2")))
	got, err = r.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-2"), got)
}

func TestGet_MissingKeyIsNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	got, err := r.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))

	require.NoError(t, r.Delete(ctx, "a"))
	got, err := r.Get(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, r.Clear(ctx))
	got, err = r.Get(ctx, "b")
	require.NoError(t, err)
	require.Nil(t, got)
}
