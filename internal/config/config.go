package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	AppPort     string
	LogLevel    string

	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBMigrations string // empty applies the schema embedded in the binary

	KafkaBrokers           string
	KafkaClientID          string
	KafkaGroupID           string
	KafkaInstanceID        string
	KafkaTopicPartitions   string
	KafkaDLQPartitions     string
	KafkaReplicationFactor string
	EventDrivenEnabled     string

	RedisAddr     string
	RedisPassword string
	RedisDB       string
	CacheTTL      string

	StoreTimeout          string
	MaxPointsPerVisit     string
	DefaultPointsPerVisit string
	InsightRulesFile      string

	JaegerEndpoint string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	instanceID := os.Getenv("KAFKA_INSTANCE_ID")
	if instanceID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			instanceID = "unknown"
		} else {
			instanceID = hostname
		}
	}

	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "loyalty-points"),
		AppPort:     getEnv("APP_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "loyaltydb"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		DBMigrations: getEnv("DB_MIGRATIONS_DIR", ""),

		KafkaBrokers:           getEnv("KAFKA_BROKERS", "kafka:9092"),
		KafkaClientID:          getEnv("KAFKA_CLIENT_ID", "loyalty-service"),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "loyalty-consumers"),
		KafkaInstanceID:        instanceID,
		KafkaTopicPartitions:   getEnv("KAFKA_TOPIC_PARTITIONS", "3"),
		KafkaDLQPartitions:     getEnv("KAFKA_DLQ_PARTITIONS", "1"),
		KafkaReplicationFactor: getEnv("KAFKA_REPLICATION_FACTOR", "1"),
		EventDrivenEnabled:     getEnv("EVENT_DRIVEN_ENABLED", "false"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),
		CacheTTL:      getEnv("CACHE_TTL", "30s"),

		StoreTimeout:          getEnv("STORE_TIMEOUT", "5s"),
		MaxPointsPerVisit:     getEnv("MAX_POINTS_PER_VISIT", "100"),
		DefaultPointsPerVisit: getEnv("DEFAULT_POINTS_PER_VISIT", "10"),
		InsightRulesFile:      getEnv("INSIGHT_RULES_FILE", ""),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) EventDriven() bool {
	enabled, err := strconv.ParseBool(c.EventDrivenEnabled)
	return err == nil && enabled
}

func (c *Config) TopicPartitions() int {
	return parseInt(c.KafkaTopicPartitions, 3)
}

func (c *Config) DLQPartitions() int {
	return parseInt(c.KafkaDLQPartitions, 1)
}

func (c *Config) ReplicationFactor() int16 {
	value := parseInt(c.KafkaReplicationFactor, 1)
	return int16(value)
}

func (c *Config) RedisDatabase() int {
	n, err := strconv.Atoi(c.RedisDB)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (c *Config) CacheExpiry() time.Duration {
	return parseDuration(c.CacheTTL, 30*time.Second)
}

func (c *Config) StoreDeadline() time.Duration {
	return parseDuration(c.StoreTimeout, 5*time.Second)
}

// MaxPoints is capped at what a points column can store.
func (c *Config) MaxPoints() int {
	return min(parseInt(c.MaxPointsPerVisit, 100), math.MaxInt32)
}

func (c *Config) DefaultPoints() int {
	return min(parseInt(c.DefaultPointsPerVisit, 10), math.MaxInt32)
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
