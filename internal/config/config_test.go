package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("PUBLISH_QUEUE", "ad_publish")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "adboost_test")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("CURRENCY", "usd")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "ad_publish", cfg.PublishQueue)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "postgres://postgres:@localhost:5432/adboost_test?sslmode=disable", cfg.Database.DSN())
}

func TestLoadRejectsBadCurrency(t *testing.T) {
	t.Setenv("CURRENCY", "naira")

	_, _, err := Load()
	assert.Error(t, err)
}

func TestSeedPrefersConfiguredValue(t *testing.T) {
	cfg := &Config{SimulatorSeed: 7}
	assert.Equal(t, int64(7), cfg.Seed())
}
