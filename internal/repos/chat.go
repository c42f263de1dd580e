package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

type ChatRepo interface {
	Create(ctx context.Context, tx *gorm.DB, c *chat.Chat) (*chat.Chat, error)
	GetByID(ctx context.Context, tx *gorm.DB, chatID string) (*chat.Chat, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, chatIDs []string) ([]*chat.Chat, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, chatID, status string) error
}

type chatRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatRepo(db *gorm.DB, baseLog *logger.Logger) ChatRepo {
	repoLog := baseLog.With("repo", "ChatRepo")
	return &chatRepo{db: db, log: repoLog}
}

func (cr *chatRepo) Create(ctx context.Context, tx *gorm.DB, c *chat.Chat) (*chat.Chat, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (cr *chatRepo) GetByID(ctx context.Context, tx *gorm.DB, chatID string) (*chat.Chat, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result chat.Chat
	if err := transaction.WithContext(ctx).
		Where("id = ?", chatID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *chatRepo) GetByIDs(ctx context.Context, tx *gorm.DB, chatIDs []string) ([]*chat.Chat, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*chat.Chat
	if len(chatIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", chatIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *chatRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, chatID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&chat.Chat{}).
		Where("id = ?", chatID).
		Update("status", status).Error
}
