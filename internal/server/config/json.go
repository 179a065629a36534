package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/feas-project/feas-server/internal/flagx"
	"github.com/feas-project/feas-server/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify token lifetimes either
// as strings like "30m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	EndpointAddr                *string         `json:"endpoint_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	DefaultTokenTTL             *timex.Duration `json:"default_token_ttl"`
	BcryptCost                  *int            `json:"bcrypt_cost"`
	DevAutoProvision            *bool           `json:"dev_auto_provision"`
	CORSAllowedOrigin           *string         `json:"cors_allowed_origin"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The lookup order for the JSON file path is:
//  1. The -c or -config command-line flags via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Fields are pointers so that only keys present in the file override
// earlier stages. Read or unmarshal errors panic.
//
// Intended usage is: defaults -> env -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != nil {
		cfg.EndpointAddr = *jc.EndpointAddr
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = time.Duration(jc.AccessTokenValidityDuration.Duration)
	}
	if jc.DefaultTokenTTL != nil {
		cfg.DefaultTokenTTL = time.Duration(jc.DefaultTokenTTL.Duration)
	}
	if jc.BcryptCost != nil {
		cfg.BcryptCost = *jc.BcryptCost
	}
	if jc.DevAutoProvision != nil {
		cfg.DevAutoProvision = *jc.DevAutoProvision
	}
	if jc.CORSAllowedOrigin != nil {
		cfg.CORSAllowedOrigin = *jc.CORSAllowedOrigin
	}
}
