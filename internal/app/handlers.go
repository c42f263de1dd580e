package app

import (
	httpH "github.com/yungbote/huddle-backend/internal/http/handlers"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	User    *httpH.UserHandler
	Chat    *httpH.ChatHandler
	Message *httpH.MessageHandler
	Summary *httpH.SummaryHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Auth:    httpH.NewAuthHandler(s.Auth),
		User:    httpH.NewUserHandler(s.User),
		Chat:    httpH.NewChatHandler(s.Chat),
		Message: httpH.NewMessageHandler(s.Message),
		Summary: httpH.NewSummaryHandler(s.Summary),
	}
}
