package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URI", "FAIL_SOFT", "LOG_LEVEL", "LOG_SQL", "PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "METRICS_NAMESPACE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite:///data/flights.sqlite3", cfg.DatabaseURI)
	assert.True(t, cfg.FailSoft)
	assert.False(t, cfg.LogSQL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "flightdata", cfg.MetricsNamespace)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://flights:secret@db:5432/flights")
	t.Setenv("FAIL_SOFT", "false")
	t.Setenv("LOG_SQL", "1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("READ_TIMEOUT", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://flights:secret@db:5432/flights", cfg.DatabaseURI)
	assert.False(t, cfg.FailSoft)
	assert.True(t, cfg.LogSQL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoadConfig_BadNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	t.Setenv("WRITE_TIMEOUT", "soon")
	t.Setenv("FAIL_SOFT", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.True(t, cfg.FailSoft)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		level   string
		wantErr string
	}{
		{name: "sqlite", uri: "sqlite:///data/flights.sqlite3", level: "info"},
		{name: "sqlalchemy driver suffix", uri: "mysql+pymysql://u:p@h/db", level: "info"},
		{name: "postgresql", uri: "postgresql://h/db", level: "warn"},
		{name: "missing scheme", uri: "data/flights.sqlite3", level: "info", wantErr: "dialect://"},
		{name: "unknown dialect", uri: "oracle://h/db", level: "info", wantErr: "oracle"},
		{name: "blank", uri: "  ", level: "info", wantErr: "DATABASE_URI is required"},
		{name: "bad level", uri: "sqlite://", level: "chatty", wantErr: "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DatabaseURI: tt.uri, LogLevel: tt.level}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
