package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadArgs(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadArgs(nil)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.HTTPServerAddr)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, config.DriverFile, cfg.Storage.Driver)
		assert.Equal(t, "pp_cart", cfg.Storage.Key)
		assert.Equal(t, int64(79), cfg.Pricing.ShippingFee)
		assert.Equal(t, "0.05", cfg.Pricing.TaxRate.String())
		assert.False(t, cfg.Broker.Enabled)
	})

	t.Run("FileFlag", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
http_server_addr: 127.0.0.1:9000
storage:
  driver: sqlite
  sqlite: /tmp/cart.db
pricing:
  shipping_fee: 99
  tax_rate: 0.18
broker:
  enabled: true
  seed_brokers: [kafka-1:9092, kafka-2:9092]
  schema_registry_urls: [http://sr:8081]
  orders_topic: orders
`)
		cfg, err := config.LoadArgs([]string{"--config", path, "unrelated"})
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "127.0.0.1:9000", cfg.HTTPServerAddr)
		assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
		assert.Equal(t, "/tmp/cart.db", cfg.Storage.SQLite)
		assert.Equal(t, int64(99), cfg.Pricing.ShippingFee)
		assert.Equal(t, "0.18", cfg.Pricing.TaxRate.String())
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Broker.SeedBrokers)
		assert.Equal(t, "orders", cfg.Broker.OrdersTopic)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: sqlite\n")
		t.Setenv("STOREFRONT_CONFIG_FILE", path)
		t.Setenv("STOREFRONT_STORAGE_DRIVER", "redis")
		t.Setenv("STOREFRONT_STORAGE_REDIS_TTL", "720h")
		t.Setenv("STOREFRONT_PRICING_TAX_RATE", "0.12")

		cfg, err := config.LoadArgs(nil)
		require.NoError(t, err)
		assert.Equal(t, config.DriverRedis, cfg.Storage.Driver)
		assert.Equal(t, 720*time.Hour, cfg.Storage.RedisTTL)
		assert.Equal(t, "0.12", cfg.Pricing.TaxRate.String())
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  engine: file\n")
		_, err := config.LoadArgs([]string{"--config", path})
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.LoadArgs([]string{"--config", "/nonexistent/config.yaml"})
		assert.Error(t, err)
	})

	t.Run("InvalidValues", func(t *testing.T) {
		path := writeConfig(t, `
storage:
  driver: mongo
  key: ""
pricing:
  shipping_fee: -1
broker:
  enabled: true
`)
		_, err := config.LoadArgs([]string{"--config", path})
		require.Error(t, err)
		assert.ErrorContains(t, err, "storage.driver")
		assert.ErrorContains(t, err, "storage.key")
		assert.ErrorContains(t, err, "pricing.shipping_fee")
		assert.ErrorContains(t, err, "broker.seed_brokers")
	})

	t.Run("PostgresNeedsDSN", func(t *testing.T) {
		t.Setenv("STOREFRONT_STORAGE_DRIVER", "postgres")
		_, err := config.LoadArgs(nil)
		assert.ErrorContains(t, err, "storage.sql_db")
	})
}
