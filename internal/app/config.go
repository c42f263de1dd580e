package app

import (
	"time"

	"github.com/yungbote/huddle-backend/internal/pkg/envutil"
)

type Config struct {
	Port string

	SummaryMessageBuffer int

	RateLimitWindow   time.Duration
	RateLimitRequests uint

	RedisAddr     string
	RedisPassword string

	Environment string
	Version     string
}

func LoadConfig() Config {
	return Config{
		Port:                 envutil.String("PORT", "8080"),
		SummaryMessageBuffer: envutil.Int("SUMMARY_MESSAGE_BUFFER", 1000),
		RateLimitWindow:      time.Duration(envutil.Int("RATE_LIMIT_WINDOW_SECONDS", 1)) * time.Second,
		RateLimitRequests:    uint(envutil.Int("RATE_LIMIT_REQUESTS", 100)),
		RedisAddr:            envutil.String("REDIS_ADDR", ""),
		RedisPassword:        envutil.String("REDIS_PASSWORD", ""),
		Environment:          envutil.String("APP_ENV", "development"),
		Version:              envutil.String("APP_VERSION", "dev"),
	}
}
