package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limbo/habitflow/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.APIAddress)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, config.StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "./data/habitflow.db", cfg.SQLitePath)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.Redis.Address)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "habitflow-achievements", cfg.Kafka.Topic)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from_file\n" +
		"STORAGE_DRIVER=postgres\n" +
		"POSTGRES_USER=habitflow\n" +
		"POSTGRES_DB=habitflow\n" +
		"KAFKA_BROKERS=kafka-1:9092,kafka-2:9092\n" +
		"SESSION_TTL=2h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, key := range []string{"JWT_SECRET", "STORAGE_DRIVER", "POSTGRES_USER", "POSTGRES_DB", "KAFKA_BROKERS", "SESSION_TTL"} {
			os.Unsetenv(key)
		}
	})
	t.Setenv("API_ADDRESS", ":9090")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.JWTSecret)
	assert.Equal(t, ":9090", cfg.APIAddress)
	assert.Equal(t, config.StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Hour, cfg.Redis.SessionTTL)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		Desc string
		Envs map[string]string
	}{
		{
			Desc: "no secret",
			Envs: map[string]string{},
		},
		{
			Desc: "unknown driver",
			Envs: map[string]string{"JWT_SECRET": "secret", "STORAGE_DRIVER": "mongo"},
		},
		{
			Desc: "postgres without credentials",
			Envs: map[string]string{"JWT_SECRET": "secret", "STORAGE_DRIVER": "postgres"},
		},
		{
			Desc: "broken ttl",
			Envs: map[string]string{"JWT_SECRET": "secret", "JWT_TTL": "soon"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tc.Envs {
				t.Setenv(k, v)
			}
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
