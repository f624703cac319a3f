package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
  writeTimeout: 45
payment:
  secretKey: from-file
  timeout: 12
delivery:
  apiKey: amigo-file
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
transaction:
  trackLimit: 25
`

func withConfigDir(t *testing.T, env, content string) {
	t.Helper()
	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
	}

	paths, dotEnv := ConfigPaths, DotEnvPaths
	ConfigPaths = []string{dir}
	DotEnvPaths = nil
	t.Cleanup(func() {
		ConfigPaths, DotEnvPaths = paths, dotEnv
	})
	t.Setenv("SAUKI_ENV", env)
}

func TestLoadConfig(t *testing.T) {
	t.Run("File values with durations converted", func(t *testing.T) {
		withConfigDir(t, Test, testYAML)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 12*time.Second, cfg.Payment.Timeout)
		assert.Equal(t, 30*time.Second, cfg.Delivery.Timeout)
		assert.Equal(t, 720*time.Minute, cfg.Admin.TokenTTL)
		assert.Equal(t, 500*time.Millisecond, cfg.Database.SlowThreshold)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 25, cfg.Transaction.TrackLimit)
		assert.Equal(t, "https://amigo.ng/api", cfg.Delivery.BaseURL)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Secret variables override the file", func(t *testing.T) {
		withConfigDir(t, Test, testYAML)
		t.Setenv("FLW_SECRET_KEY", "from-env")
		t.Setenv("AMIGO_API_KEY", "amigo-env")
		t.Setenv("SAUKI_KAFKA_BROKERS", "a:1,b:2")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Payment.SecretKey)
		assert.Equal(t, "amigo-env", cfg.Delivery.APIKey)
		assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
	})

	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		withConfigDir(t, Production, "")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 10, cfg.Transaction.TrackLimit)
	})

	t.Run("Malformed file is an error", func(t *testing.T) {
		withConfigDir(t, Test, "server: [unclosed")

		_, err := LoadConfig()

		assert.Error(t, err)
	})
}
