package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSetDefaults(t *testing.T) {
	cfg := defaults(t)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 60*24*7, cfg.JWT.ExpireMinutes)
	assert.Equal(t, "local", cfg.Upload.Driver)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "jwt secret"},
		{"short secret in prod", func(c *Config) { c.App.Env = "prod" }, "32 characters"},
		{"asymmetric algorithm", func(c *Config) { c.JWT.Algorithm = "RS256" }, "unsupported jwt algorithm"},
		{"zero expiry", func(c *Config) { c.JWT.ExpireMinutes = 0 }, "expire_minutes"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unsupported database driver"},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, "dsn"},
		{"redis without addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "redis address"},
		{"oss incomplete", func(c *Config) { c.Upload.Driver = "oss" }, "oss configuration"},
		{"unknown upload driver", func(c *Config) { c.Upload.Driver = "s3" }, "unsupported upload driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("long secret in prod", func(t *testing.T) {
		cfg := defaults(t)
		cfg.App.Env = "prod"
		cfg.JWT.Secret = strings.Repeat("s", 32)
		assert.NoError(t, cfg.Validate())
	})
}
