package config

import (
	"flag"
	"os"

	"github.com/phonomarket/phono/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address for the HTTP endpoint
//	-d string   PostgreSQL DSN
//	-k string   JWT signing secret
//	-dev        use the colored development log handler
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-dev"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to bind")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing secret")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "development log output")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
