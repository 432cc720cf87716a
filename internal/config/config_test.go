package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 characters")
}

func TestLoad_PostgresBackendNeedsDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-secret-key-that-is-32-chars-ok")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_BACKEND", BackendPostgres)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MemoryBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-secret-key-that-is-32-chars-ok")
	t.Setenv("STORAGE_BACKEND", BackendMemory)
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-secret-key-that-is-32-chars-ok")
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
}

func TestDefaultWorkerConfig(t *testing.T) {
	cfg := DefaultWorkerConfig()
	assert.Equal(t, 4, cfg.Queuing.Concurrency)
	assert.NotZero(t, cfg.Queuing.QueuePriorities["email"])
}
