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
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Address      string
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxPoolConns int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// RedisConfig is optional. An empty Addr disables the flight cache.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	FlightsTTL time.Duration
}

// KafkaConfig is optional. An empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers            []string
	EventsTopic        string
	NotificationsTopic string
	GroupID            string
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	serverCfg, err := newServerConfig()
	if err != nil {
		return nil, fmt.Errorf("server config error: %w", err)
	}

	dbCfg, err := newDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config error: %w", err)
	}

	authCfg, err := newAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config error: %w", err)
	}

	redisCfg, err := newRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("redis config error: %w", err)
	}

	return &Config{
		Server:   serverCfg,
		Database: dbCfg,
		Auth:     authCfg,
		Redis:    redisCfg,
		Kafka:    newKafkaConfig(),
	}, nil
}

func newServerConfig() (ServerConfig, error) {
	writeTimeout, err := getDurationFromEnv("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("write timeout parse error: %w", err)
	}

	readTimeout, err := getDurationFromEnv("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read timeout parse error: %w", err)
	}

	idleTimeout, err := getDurationFromEnv("SERVER_IDLE_TIMEOUT", "30s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("idle timeout parse error: %w", err)
	}

	return ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":5000"),
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func newDatabaseConfig() (DatabaseConfig, error) {
	maxConns, err := strconv.Atoi(getEnvOrDefault("MAX_CONNS", "99"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("max connections parse error: %w", err)
	}

	return DatabaseConfig{
		Host:         getEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:         getEnvOrDefault("POSTGRES_PORT", "5432"),
		Name:         getEnvOrDefault("POSTGRES_DB", "btair"),
		User:         getEnvOrDefault("POSTGRES_USER", "postgres"),
		Password:     getEnvOrDefault("POSTGRES_PASSWORD", ""),
		MaxPoolConns: maxConns,
	}, nil
}

func newAuthConfig() (AuthConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := getDurationFromEnv("JWT_TOKEN_TTL", "24h")
	if err != nil {
		return AuthConfig{}, fmt.Errorf("token ttl parse error: %w", err)
	}

	return AuthConfig{JWTSecret: secret, TokenTTL: ttl}, nil
}

func newRedisConfig() (RedisConfig, error) {
	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("redis db parse error: %w", err)
	}

	ttl, err := getDurationFromEnv("REDIS_FLIGHTS_TTL", "5m")
	if err != nil {
		return RedisConfig{}, fmt.Errorf("flights ttl parse error: %w", err)
	}

	return RedisConfig{
		Addr:       os.Getenv("REDIS_ADDR"),
		Password:   os.Getenv("REDIS_PASSWORD"),
		DB:         db,
		FlightsTTL: ttl,
	}, nil
}

func newKafkaConfig() KafkaConfig {
	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return KafkaConfig{
		Brokers:            brokers,
		EventsTopic:        getEnvOrDefault("KAFKA_EVENTS_TOPIC", "reservation-events"),
		NotificationsTopic: getEnvOrDefault("KAFKA_NOTIFICATIONS_TOPIC", "reservation-events"),
		GroupID:            getEnvOrDefault("KAFKA_GROUP_ID", "btair-notifications"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationFromEnv(key, defaultValue string) (time.Duration, error) {
	return time.ParseDuration(getEnvOrDefault(key, defaultValue))
}
