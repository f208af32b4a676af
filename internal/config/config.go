package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port         string
	DBDSN        string
	RedisAddr    string
	KafkaBrokers []string
	JWTSecret    string
}

func Load() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		DBDSN:        buildDSN(),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: KafkaBrokerURLs(),
		JWTSecret:    getenv("JWT_SECRET", "secret"),
	}
}

func buildDSN() string {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		getenv("DB_USER", "root"),
		os.Getenv("DB_PASS"),
		getenv("DB_HOST", "127.0.0.1"),
		getenv("DB_PORT", "3306"),
		getenv("DB_NAME", "glory_shop"),
	)
}

func KafkaBrokerURLs() []string {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	return strings.Split(brokers, ",")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
