package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

type ChatParticipantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, participants []*chat.Participant) ([]*chat.Participant, error)
	Get(ctx context.Context, tx *gorm.DB, chatID, userID string) (*chat.Participant, error)
	ListByChat(ctx context.Context, tx *gorm.DB, chatID string) ([]*chat.Participant, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*chat.Participant, error)
	CountByChat(ctx context.Context, tx *gorm.DB, chatID string) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, chatID, userID string) error
	DeleteAllForChat(ctx context.Context, tx *gorm.DB, chatID string) error
}

type chatParticipantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatParticipantRepo(db *gorm.DB, baseLog *logger.Logger) ChatParticipantRepo {
	repoLog := baseLog.With("repo", "ChatParticipantRepo")
	return &chatParticipantRepo{db: db, log: repoLog}
}

func (pr *chatParticipantRepo) Create(ctx context.Context, tx *gorm.DB, participants []*chat.Participant) ([]*chat.Participant, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(participants) == 0 {
		return []*chat.Participant{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (pr *chatParticipantRepo) Get(ctx context.Context, tx *gorm.DB, chatID, userID string) (*chat.Participant, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result chat.Participant
	if err := transaction.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *chatParticipantRepo) ListByChat(ctx context.Context, tx *gorm.DB, chatID string) ([]*chat.Participant, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*chat.Participant
	if err := transaction.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("joined_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *chatParticipantRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*chat.Participant, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*chat.Participant
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *chatParticipantRepo) CountByChat(ctx context.Context, tx *gorm.DB, chatID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&chat.Participant{}).
		Where("chat_id = ?", chatID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *chatParticipantRepo) Delete(ctx context.Context, tx *gorm.DB, chatID, userID string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Delete(&chat.Participant{}).Error
}

func (pr *chatParticipantRepo) DeleteAllForChat(ctx context.Context, tx *gorm.DB, chatID string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Delete(&chat.Participant{}).Error
}
