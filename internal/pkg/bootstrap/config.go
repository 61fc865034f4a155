package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"artisan/internal/pkg/logger"
)

// Config 是整个进程的配置树，来源优先级：环境变量 > yaml 文件 > 默认值。
type Config struct {
	App struct {
		ServiceName    string `yaml:"service_name"`
		Port           int    `yaml:"port"`
		CartStorageKey string `yaml:"cart_storage_key"`
		FeatureFlags   struct {
			EnableOrderEvents bool `yaml:"enable_order_events"`
		} `yaml:"feature_flags"`
	} `yaml:"app"`

	Infra struct {
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		Mysql struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
		Kafka struct {
			Brokers    []string `yaml:"brokers"`
			OrderTopic string   `yaml:"order_topic"`
		} `yaml:"kafka"`
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
		CatalogAPI struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"catalog_api"`
	} `yaml:"infra"`

	Checkout struct {
		// SubmitLatencyMs 模拟下单调用的耗时
		SubmitLatencyMs int `yaml:"submit_latency_ms"`
		// FailureRate 模拟下单失败的概率，0~1
		FailureRate float64 `yaml:"failure_rate"`
	} `yaml:"checkout"`
}

var (
	configMu      sync.RWMutex
	currentConfig Config
)

// Init 加载配置。文件路径来自 CONFIG_PATH，文件不存在时仅用默认值和环境变量。
func Init() {
	cfg := defaultConfig()

	path := getEnv("CONFIG_PATH", "configs/storefront.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logger.Logger.Fatal().Err(err).Str("path", path).Msg("invalid config file")
		}
	} else if !os.IsNotExist(err) {
		logger.Logger.Fatal().Err(err).Str("path", path).Msg("cannot read config file")
	}

	applyEnvOverrides(&cfg)

	configMu.Lock()
	currentConfig = cfg
	configMu.Unlock()
}

// GetCurrentConfig 返回当前配置的副本。
func GetCurrentConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return currentConfig
}

func defaultConfig() Config {
	var cfg Config
	cfg.App.ServiceName = "storefront"
	cfg.App.Port = 8080
	cfg.App.CartStorageKey = "cart"
	cfg.Infra.Kafka.OrderTopic = "order-placed-topic"
	cfg.Infra.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	cfg.Checkout.SubmitLatencyMs = 2000
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Infra.Redis.Addr = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.Infra.Mysql.DSN = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Infra.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("JAEGER_ENDPOINT"); v != "" {
		cfg.Infra.Jaeger.Endpoint = v
	}
	if v := os.Getenv("CATALOG_API_URL"); v != "" {
		cfg.Infra.CatalogAPI.BaseURL = v
	}
}

// getEnv 从环境变量中读取配置，不存在时返回默认值。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
