package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-a", ":7070", "-d", "postgres://x", "-dev"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseFlags(cfg) })

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.True(t, cfg.Dev)
}
