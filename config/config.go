package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Server    ServerConfig
	Redis     RedisConfig
	Counter   CounterConfig
	Log       LogConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	HTTPPort     int
	GRpcPort     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
}

type CounterConfig struct {
	Seats                 []string
	SessionMinutes        int
	WaitMinutes           int
	AverageWindow         int
	CallHistoryLimit      int
	SkippedHistoryLimit   int
	ArchiveLimit          int
	RolloverCheckInterval time.Duration
	Timezone              string
	ObserverBuffer        int
	LayoutFile            string
	ShowEstimatedWaitTime bool
	ShowPersonalStatus    bool
}

type KafkaConfig struct {
	Brokers              []string
	ProducerRetryMax     int
	ProducerRequiredAcks int
	Enabled              bool
	ConsumerGroupID      string
	ConsumerFromOldest   bool
	ClientID             string
}

type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
}

type LogConfig struct {
	Level    string
	Mode     string
	Encoding string
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			HTTPPort:     getEnvAsInt("SERVER_HTTP_PORT", 3001),
			GRpcPort:     getEnvAsInt("SERVER_GRPC_PORT", 50057),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", true),
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		},
		Counter: CounterConfig{
			Seats:                 getEnvAsSlice("COUNTER_SEATS", []string{"Room 1", "Room 2"}),
			SessionMinutes:        getEnvAsInt("COUNTER_SESSION_MINUTES", 5),
			WaitMinutes:           getEnvAsInt("COUNTER_WAIT_MINUTES", 5),
			AverageWindow:         getEnvAsInt("COUNTER_AVERAGE_WINDOW", 20),
			CallHistoryLimit:      getEnvAsInt("COUNTER_CALL_HISTORY_LIMIT", 10),
			SkippedHistoryLimit:   getEnvAsInt("COUNTER_SKIPPED_HISTORY_LIMIT", 20),
			ArchiveLimit:          getEnvAsInt("COUNTER_ARCHIVE_LIMIT", 30),
			RolloverCheckInterval: getEnvAsDuration("COUNTER_ROLLOVER_CHECK_INTERVAL", time.Minute),
			Timezone:              getEnv("COUNTER_TIMEZONE", "Local"),
			ObserverBuffer:        getEnvAsInt("COUNTER_OBSERVER_BUFFER", 32),
			LayoutFile:            getEnv("COUNTER_LAYOUT_FILE", ""),
			ShowEstimatedWaitTime: getEnvAsBool("COUNTER_SHOW_ESTIMATED_WAIT_TIME", true),
			ShowPersonalStatus:    getEnvAsBool("COUNTER_SHOW_PERSONAL_STATUS", true),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Mode:     getEnv("LOG_MODE", "development"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
		Kafka: KafkaConfig{
			Brokers:              getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			ProducerRetryMax:     getEnvAsInt("KAFKA_PRODUCER_RETRY_MAX", 3),
			ProducerRequiredAcks: getEnvAsInt("KAFKA_PRODUCER_REQUIRED_ACKS", 1),
			Enabled:              getEnvAsBool("KAFKA_ENABLED", false),
			ConsumerGroupID:      getEnv("KAFKA_CONSUMER_GROUP_ID", "counter-service"),
			ConsumerFromOldest:   getEnvAsBool("KAFKA_CONSUMER_FROM_OLDEST", false),
			ClientID:             getEnv("KAFKA_CLIENT_ID", "counter-service"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "counter-service"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPInsecure: getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		},
	}

	if cfg.Counter.LayoutFile != "" {
		layout, err := LoadLayout(cfg.Counter.LayoutFile)
		if err != nil {
			return nil, err
		}
		layout.apply(&cfg.Counter)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}

	if c.Server.GRpcPort <= 0 || c.Server.GRpcPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRpcPort)
	}

	if c.Server.HTTPPort == c.Server.GRpcPort {
		return fmt.Errorf("http and grpc ports must differ: %d", c.Server.HTTPPort)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}

	if c.Counter.SessionMinutes <= 0 {
		return fmt.Errorf("session minutes must be positive: %d", c.Counter.SessionMinutes)
	}

	if c.Counter.WaitMinutes <= 0 {
		return fmt.Errorf("wait minutes must be positive: %d", c.Counter.WaitMinutes)
	}

	if c.Counter.CallHistoryLimit <= 0 || c.Counter.SkippedHistoryLimit <= 0 {
		return fmt.Errorf("history limits must be positive")
	}

	if c.Counter.RolloverCheckInterval <= 0 {
		return fmt.Errorf("rollover check interval must be positive")
	}

	if _, err := c.Counter.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Counter.Timezone, err)
	}

	return nil
}

// Location resolves the timezone that defines the operational day.
func (c CounterConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
