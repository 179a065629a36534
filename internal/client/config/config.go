// Package config handles configuration for the feasctl client,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/feas-project/feas-server/internal/flagx"
)

// Config holds runtime settings for the feasctl client.
type Config struct {
	ServerURL string `json:"server_url"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// parseJson overlays Config with values loaded from the JSON file named
// by the -c/-config flags, if any. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc Config

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-u string   base URL of the FEAS server (e.g., "http://127.0.0.1:8000")
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
