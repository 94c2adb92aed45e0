package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ListenAddr  string

	DatabaseURL string

	JWTSecret      []byte
	AccessTokenTTL time.Duration

	RequestTimeout time.Duration
	LogLevel       string

	KafkaBrokers    []string
	UserEventsTopic string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "auth"),
		ListenAddr:  EnvDefault("AUTH_ADDR", ":8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AccessTokenTTL: EnvDurationDefault("ACCESS_TOKEN_TTL", time.Hour),

		RequestTimeout: EnvDurationDefault("REQUEST_TIMEOUT", 10*time.Second),
		LogLevel:       EnvDefault("LOG_LEVEL", "info"),

		KafkaBrokers:    CSV(os.Getenv("KAFKA_BROKERS")),
		UserEventsTopic: EnvDefault("USER_EVENTS_TOPIC", "user_events"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
