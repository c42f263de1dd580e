package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/db"
	internalhttp "github.com/yungbote/huddle-backend/internal/http"
	"github.com/yungbote/huddle-backend/internal/observability"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services

	server       *internalhttp.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "huddle-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	clientset, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clientset)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, cfg, serviceset, clientset)

	server := internalhttp.NewServer(internalhttp.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.Auth,
		RateLimiter:    middleware.RateLimiter,
		Tracing:        middleware.Tracing,
		HealthHandler:  handlerset.Health,
		AuthHandler:    handlerset.Auth,
		UserHandler:    handlerset.User,
		ChatHandler:    handlerset.Chat,
		MessageHandler: handlerset.Message,
		SummaryHandler: handlerset.Summary,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       server.Engine,
		server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clientset,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Clients.Messages != nil {
		if err := a.Clients.Messages.Close(); err != nil {
			a.Log.Warn("Closing message store failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
