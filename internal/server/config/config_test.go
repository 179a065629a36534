package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.EndpointAddr)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 15*time.Minute, c.DefaultTokenTTL)
	assert.Equal(t, bcrypt.DefaultCost, c.BcryptCost)
	assert.False(t, c.DevAutoProvision)
	assert.Equal(t, "*", c.CORSAllowedOrigin)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, ":8000", cfg.EndpointAddr)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("FEAS_ADDR", ":9001")
	t.Setenv("FEAS_SECRET_KEY", "env-secret")
	t.Setenv("FEAS_ACCESS_TOKEN_TTL", "45m")
	t.Setenv("FEAS_DEV_AUTO_PROVISION", "true")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, ":9001", cfg.EndpointAddr)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
	assert.True(t, cfg.DevAutoProvision)
}

func TestParseFlags_AbsentDurationFlagsKeepSubMinuteValues(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	var cfg Config
	cfg.LoadDefaults()
	cfg.AccessTokenValidityDuration = 90 * time.Second
	cfg.DefaultTokenTTL = 30 * time.Second
	parseFlags(&cfg)

	assert.Equal(t, 90*time.Second, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Second, cfg.DefaultTokenTTL)
}

func TestParseFlags_DurationFlagsOverride(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-t", "5", "-f", "10"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 10*time.Minute, cfg.DefaultTokenTTL)
}

func TestParseEnv_UnsetVariablesKeepDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, ":8000", cfg.EndpointAddr)
	assert.Equal(t, 15*time.Minute, cfg.DefaultTokenTTL)
}
