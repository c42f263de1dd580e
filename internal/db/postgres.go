package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/domain/user"
	"github.com/yungbote/huddle-backend/internal/pkg/envutil"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := envutil.String("POSTGRES_HOST", "localhost")
	postgresPort := envutil.String("POSTGRES_PORT", "5432")
	postgresUser := envutil.String("POSTGRES_USER", "postgres")
	postgresPassword := envutil.String("POSTGRES_PASSWORD", "")
	postgresName := envutil.String("POSTGRES_NAME", "huddle")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&user.User{},
		&chat.Chat{},
		&chat.Participant{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	if err := s.db.Exec(`
		ALTER TABLE "chats"
		ADD CONSTRAINT "fk_chats_creator_id"
		FOREIGN KEY ("creator_id")
		REFERENCES "users"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		s.log.Warn("Foreign key fk_chats_creator_id not applied", "error", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "chat_participants"
		ADD CONSTRAINT "fk_chat_participants_chat_id"
		FOREIGN KEY ("chat_id")
		REFERENCES "chats"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		s.log.Warn("Foreign key fk_chat_participants_chat_id not applied", "error", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "chat_participants"
		ADD CONSTRAINT "fk_chat_participants_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "users"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		s.log.Warn("Foreign key fk_chat_participants_user_id not applied", "error", err)
	}
	return nil
}
