package app

import (
	"github.com/gin-gonic/gin"

	httpMW "github.com/yungbote/huddle-backend/internal/http/middleware"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth        *httpMW.AuthMiddleware
	RateLimiter gin.HandlerFunc
	Tracing     gin.HandlerFunc
}

func wireMiddleware(log *logger.Logger, cfg Config, s Services, c Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:        httpMW.NewAuthMiddleware(log, s.Auth),
		RateLimiter: httpMW.RateLimit(log, c.Redis, cfg.RateLimitWindow, cfg.RateLimitRequests),
		Tracing:     httpMW.Tracing("huddle-backend"),
	}
}
