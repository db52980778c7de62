package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_DSN", "DB_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "MAX_BODY_BYTES", "TENANT_HEADER", "ENABLE_HSTS"} {
		t.Setenv(k, "")
	}

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.DBTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "X-Tenant-Id", cfg.TenantHeader)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.EnableHSTS)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DB_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("TENANT_HEADER", "X-Org")
	t.Setenv("ENABLE_HSTS", "true")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 750*time.Millisecond, cfg.DBTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
	assert.Equal(t, "X-Org", cfg.TenantHeader)
	assert.True(t, cfg.EnableHSTS)
}

func TestLoadConfig_ReportsEveryBadValue(t *testing.T) {
	t.Setenv("DB_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_BURST", "-1")
	t.Setenv("ENABLE_HSTS", "maybe")

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_TIMEOUT")
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
	assert.Contains(t, err.Error(), "ENABLE_HSTS")
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://***@db:5432/x", redactDSN("postgres://user:secret@db:5432/x"))
	assert.Equal(t, "postgres://db/x", redactDSN("postgres://db/x"))
	assert.Equal(t, "host=db", redactDSN("host=db"))
}
