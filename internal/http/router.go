package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/huddle-backend/internal/http/handlers"
	httpMW "github.com/yungbote/huddle-backend/internal/http/middleware"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	RateLimiter    gin.HandlerFunc
	Tracing        gin.HandlerFunc

	HealthHandler  *httpH.HealthHandler
	AuthHandler    *httpH.AuthHandler
	UserHandler    *httpH.UserHandler
	ChatHandler    *httpH.ChatHandler
	MessageHandler *httpH.MessageHandler
	SummaryHandler *httpH.SummaryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing != nil {
		r.Use(cfg.Tracing)
	}
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/signup", cfg.AuthHandler.Signup)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.GET("/auth/protected-route", cfg.AuthHandler.ProtectedRoute)
		}

		if cfg.UserHandler != nil {
			protected.GET("/users/search", cfg.UserHandler.Search)
			protected.GET("/users/:uid", cfg.UserHandler.Get)
		}

		if cfg.ChatHandler != nil {
			protected.POST("/chats", cfg.ChatHandler.Create)
			protected.GET("/chats/my", cfg.ChatHandler.ListMine)
			protected.GET("/chats/:id", cfg.ChatHandler.Get)
			protected.GET("/chats/:id/participants", cfg.ChatHandler.Participants)
			protected.POST("/chats/:id/participants", cfg.ChatHandler.AddParticipant)
			protected.DELETE("/chats/:id/participants/:user_uid", cfg.ChatHandler.RemoveParticipant)
			protected.DELETE("/chats/:id/exit", cfg.ChatHandler.Exit)
			protected.DELETE("/chats/:id/delete", cfg.ChatHandler.Delete)
		}

		if cfg.MessageHandler != nil {
			protected.POST("/chats/:id/messages", cfg.MessageHandler.Send)
			protected.GET("/chats/:id/messages", cfg.MessageHandler.List)
		}

		if cfg.SummaryHandler != nil {
			protected.GET("/chats/:id/summary", cfg.SummaryHandler.Summarize)
		}
	}

	return r
}
