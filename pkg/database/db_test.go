package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_MissingDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := ConfigFromEnv()
	assert.ErrorIs(t, err, ErrMissingDSN)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:app@db:5432/todos?sslmode=disable")
	t.Setenv("DATABASE_MAX_CONNS", "")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:app@db:5432/todos?sslmode=disable", cfg.DSN)
	assert.Equal(t, 5, cfg.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestConfigFromEnv_MaxConnsOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/todos")
	t.Setenv("DATABASE_MAX_CONNS", "20")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MaxConns)
}

func TestConfigFromEnv_BadMaxConnsIgnored(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/todos")
	t.Setenv("DATABASE_MAX_CONNS", "zero")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxConns)
}
