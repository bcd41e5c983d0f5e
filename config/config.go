package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"distributor-service/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string

	DB database.Config

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	AccessTTL   time.Duration

	// CollectOnConfirm: собирать ли остаток оплаты на confirm_order.
	// false (по умолчанию) — расчёт переносится на доставку.
	CollectOnConfirm bool

	// Kafka опциональна: пустой список брокеров отключает публикацию событий.
	KafkaBrokers []string
	KafkaTopic   string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnvDefault("APP_PORT", "8080"),
		DB: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
		JWTSecret:        getEnv("JWT_SECRET", log),
		JWTIssuer:        getEnvDefault("JWT_ISSUER", "distributor-service"),
		JWTAudience:      getEnvDefault("JWT_AUDIENCE", "distributor-api"),
		AccessTTL:        durationDefault(os.Getenv("ACCESS_TTL"), 30*time.Minute),
		CollectOnConfirm: boolDefault(os.Getenv("ORDER_COLLECT_ON_CONFIRM"), false),
		KafkaBrokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:       getEnvDefault("KAFKA_TOPIC_ORDERS", "order-events"),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func durationDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func boolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
