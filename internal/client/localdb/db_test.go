package localdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	db, err := Open(context.Background(), "file:localdb_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	// The migrated schema must accept metadata rows.
	_, err = db.ExecContext(context.Background(),
		`INSERT INTO metadata (key, value) VALUES (?, ?)`, "k", []byte("v"))
	require.NoError(t, err)
}
