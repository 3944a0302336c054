package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func cleanup() {
	for _, k := range []string{
		"APP_ENV", "PORT", "DATABASE_URL",
		"POSTGRES_ADDR", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"STATS_URL", "STATS_TIMEOUT", "STATS_PORT",
		"REDIS_ADDR", "CACHE_VIEWS_TTL",
		"RABBITMQ_URL", "RABBIT_URL", "OUTBOX_ENABLED",
		"ADMIN_JWT_SECRET", "LOG_LEVEL",
	} {
		os.Unsetenv(k)
	}
}

func TestLoadMain(t *testing.T) {
	t.Run("should_return_error_if_database_config_is_missing", func(t *testing.T) {
		cleanup()
		cfg, err := LoadMain()
		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("should_load_successfully_with_database_url", func(t *testing.T) {
		cleanup()
		os.Setenv("DATABASE_URL", "postgres://localhost:5432/ewm")

		cfg, err := LoadMain()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, "dev", cfg.AppEnv)
		assert.Equal(t, "ewm-main-service", cfg.StatsAppName)
		assert.Equal(t, "ewm.events", cfg.RabbitExchange)
		assert.Equal(t, 2*time.Second, cfg.StatsTimeout)
	})

	t.Run("should_assemble_dsn_from_postgres_pieces", func(t *testing.T) {
		cleanup()
		os.Setenv("POSTGRES_ADDR", "db:5432")
		os.Setenv("POSTGRES_USER", "ewm")
		os.Setenv("POSTGRES_PASSWORD", "p@ss/word")
		os.Setenv("POSTGRES_DB", "ewm")

		cfg, err := LoadMain()
		assert.NoError(t, err)
		assert.Contains(t, cfg.DBDSN, "postgres://")
		assert.Contains(t, cfg.DBDSN, "db:5432")
		assert.Contains(t, cfg.DBDSN, "sslmode=disable")
	})
}

func TestLoadStats(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cleanup()
		os.Setenv("DATABASE_URL", "postgres://localhost:5432/stats")

		cfg, err := LoadStats()
		assert.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("missing_db_fails", func(t *testing.T) {
		cleanup()
		cfg, err := LoadStats()
		assert.Nil(t, cfg)
		assert.Error(t, err)
	})
}
