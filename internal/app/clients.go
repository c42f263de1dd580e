package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/platform/firebase"
	"github.com/yungbote/huddle-backend/internal/platform/firestore"
	"github.com/yungbote/huddle-backend/internal/platform/gemini"
)

type Clients struct {
	Identity firebase.AuthClient
	Messages firestore.MessageStore
	Model    gemini.Client
	Redis    *redis.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring platform clients...")

	identity, err := firebase.NewAuthClient(ctx, log)
	if err != nil {
		return Clients{}, err
	}
	messages, err := firestore.NewMessageStore(ctx, log)
	if err != nil {
		return Clients{}, err
	}
	model, err := gemini.NewClient(log)
	if err != nil {
		return Clients{}, err
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, rate limits fall back to in-memory", "error", err)
			redisClient = nil
		}
	}

	return Clients{
		Identity: identity,
		Messages: messages,
		Model:    model,
		Redis:    redisClient,
	}, nil
}
