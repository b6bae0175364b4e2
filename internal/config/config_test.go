package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 他のテストや実行環境の値に引っ張られないよう全部空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_SSLMODE", "JWT_SECRET", "GO_ENV",
		"LOG_LEVEL", "KAFKA_BROKERS", "KAFKA_ORDERS_TOPIC", "KAFKA_PUBLISH_TIMEOUT_MS",
		"SHUTDOWN_TIMEOUT_SEC",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "orderhub")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "orders.events", cfg.KafkaOrdersTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Second, cfg.KafkaPublishTimeout)
	assert.Equal(t, "host=localhost port=5432 user=app password=pw dbname=orderhub sslmode=disable", cfg.DSN())
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x?sslmode=require")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/x?sslmode=require", cfg.DSN())
}

func TestLoad_KafkaBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/x")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("PORT", ":9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Second, cfg.KafkaPublishTimeout)
	assert.Equal(t, ":9000", cfg.Addr())
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing jwt secret", map[string]string{"DATABASE_URL": "postgres://x"}, "JWT_SECRET"},
		{"missing postgres user", map[string]string{"JWT_SECRET": "s"}, "POSTGRES_USER"},
		{"missing postgres db", map[string]string{"JWT_SECRET": "s", "POSTGRES_USER": "u", "POSTGRES_PASSWORD": "p"}, "POSTGRES_DB"},
		{"bad port", map[string]string{"JWT_SECRET": "s", "DATABASE_URL": "postgres://x", "POSTGRES_PORT": "abc"}, "POSTGRES_PORT"},
		{"zero publish timeout", map[string]string{"JWT_SECRET": "s", "DATABASE_URL": "postgres://x", "KAFKA_PUBLISH_TIMEOUT_MS": "0"}, "KAFKA_PUBLISH_TIMEOUT_MS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
