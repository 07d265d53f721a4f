package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetListEnv(t *testing.T) {
	t.Setenv("RESERVED_SUBDOMAINS", " www, ,app,shop ")
	assert.Equal(t, []string{"www", "app", "shop"}, GetListEnv("RESERVED_SUBDOMAINS", nil))

	t.Setenv("RESERVED_SUBDOMAINS", "")
	assert.Equal(t, []string{"www"}, GetListEnv("RESERVED_SUBDOMAINS", []string{"www"}))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://tienda.example.com/")
	t.Setenv("TENANT_CACHE_TTL", "90s")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()
	assert.Equal(t, "https://tienda.example.com", cfg.PublicBaseURL)
	assert.Equal(t, 90*time.Second, cfg.TenantCacheTTL)
	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, []string{"www", "app", "api"}, cfg.ReservedSubdomains)
}
