package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/repos"
)

type Repos struct {
	User        repos.UserRepo
	Chat        repos.ChatRepo
	Participant repos.ChatParticipantRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Chat:        repos.NewChatRepo(db, log),
		Participant: repos.NewChatParticipantRepo(db, log),
	}
}
