package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/services"
)

type Services struct {
	Auth    services.AuthService
	User    services.UserService
	Chat    services.ChatService
	Message services.MessageService
	Summary services.SummaryService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:    services.NewAuthService(db, log, r.User, c.Identity),
		User:    services.NewUserService(db, log, r.User),
		Chat:    services.NewChatService(db, log, r.Chat, r.Participant, r.User),
		Message: services.NewMessageService(db, log, r.Chat, r.Participant, r.User, c.Messages),
		Summary: services.NewSummaryService(db, log, r.Chat, r.Participant, c.Messages, c.Model, cfg.SummaryMessageBuffer),
	}
}
