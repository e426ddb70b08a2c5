package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	MongoURI        string
	RedisAddr       string
	KafkaBrokers    []string
	KafkaTopic      string
	JWTSecret       string
	WechatAppID     string
	WechatAppSecret string
}

// Load reads configuration from the environment, with .env as a fallback
// source for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, assuming environment variables are set")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "campushub-events"),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		WechatAppID:     getEnv("WECHAT_APP_ID", ""),
		WechatAppSecret: getEnv("WECHAT_APP_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
