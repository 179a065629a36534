package config

import (
	"flag"
	"os"
	"time"

	"github.com/feas-project/feas-server/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN (empty selects the in-memory store)
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-f int      default token TTL, minutes
//	-o string   CORS allowed origin
//	-x          enable dev auto-provisioning on login (insecure)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then
//     converted to time.Duration values. When a duration flag is absent
//     the value from the earlier stages is kept as-is.
func parseFlags(cfg *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-f", "-o", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	defaultTokenTTL := fs.Int("f", int(cfg.DefaultTokenTTL.Minutes()), "default token TTL (in minutes)")

	fs.StringVar(&cfg.CORSAllowedOrigin, "o", cfg.CORSAllowedOrigin, "CORS allowed origin")
	fs.BoolVar(&cfg.DevAutoProvision, "x", cfg.DevAutoProvision, "auto-provision unknown users on login (dev only)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only overwrite durations when the flag was actually passed, so
	// sub-minute values from env or JSON survive the flag stage intact.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		case "f":
			cfg.DefaultTokenTTL = time.Duration(*defaultTokenTTL) * time.Minute
		}
	})
}
