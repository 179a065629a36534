package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with values from FEAS_* environment variables.
// Only variables that are actually set override earlier stages; parse
// errors panic, since a malformed environment is a deployment bug.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
