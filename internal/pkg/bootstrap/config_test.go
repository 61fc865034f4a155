package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	for _, key := range []string{"PORT", "REDIS_ADDR", "MYSQL_DSN", "KAFKA_BROKERS", "JAEGER_ENDPOINT", "CATALOG_API_URL"} {
		t.Setenv(key, "")
	}

	Init()

	cfg := GetCurrentConfig()
	assert.Equal(t, "storefront", cfg.App.ServiceName)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "cart", cfg.App.CartStorageKey)
	assert.Equal(t, "order-placed-topic", cfg.Infra.Kafka.OrderTopic)
	assert.Equal(t, 2000, cfg.Checkout.SubmitLatencyMs)
	assert.Zero(t, cfg.Checkout.FailureRate)
}

func TestInitReadsYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	content := `
app:
  service_name: storefront-staging
  port: 9090
  feature_flags:
    enable_order_events: true
infra:
  redis:
    addr: redis-staging:6379
  kafka:
    brokers: ["kafka-1:9092", "kafka-2:9092"]
checkout:
  submit_latency_ms: 10
  failure_rate: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_PATH", path)

	Init()

	cfg := GetCurrentConfig()
	assert.Equal(t, "storefront-staging", cfg.App.ServiceName)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.True(t, cfg.App.FeatureFlags.EnableOrderEvents)
	assert.Equal(t, "redis-staging:6379", cfg.Infra.Redis.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Infra.Kafka.Brokers)
	assert.Equal(t, 10, cfg.Checkout.SubmitLatencyMs)
	assert.InDelta(t, 0.25, cfg.Checkout.FailureRate, 1e-9)
	// 文件没写的字段保持默认值
	assert.Equal(t, "order-placed-topic", cfg.Infra.Kafka.OrderTopic)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 9090\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7070")
	t.Setenv("REDIS_ADDR", "redis-prod:6379")
	t.Setenv("KAFKA_BROKERS", "kafka-a:9092,kafka-b:9092")

	Init()

	cfg := GetCurrentConfig()
	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, "redis-prod:6379", cfg.Infra.Redis.Addr)
	assert.Equal(t, []string{"kafka-a:9092", "kafka-b:9092"}, cfg.Infra.Kafka.Brokers)
}
