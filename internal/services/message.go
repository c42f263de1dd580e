package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/platform/firestore"
	"github.com/yungbote/huddle-backend/internal/repos"
)

type MessageService interface {
	Send(ctx context.Context, chatID, content string) (*chat.Message, error)
	List(ctx context.Context, chatID string) ([]*chat.Message, error)
}

type messageService struct {
	db              *gorm.DB
	log             *logger.Logger
	chatRepo        repos.ChatRepo
	participantRepo repos.ChatParticipantRepo
	userRepo        repos.UserRepo
	store           firestore.MessageStore
	now             func() time.Time
}

func NewMessageService(db *gorm.DB, log *logger.Logger, chatRepo repos.ChatRepo, participantRepo repos.ChatParticipantRepo, userRepo repos.UserRepo, store firestore.MessageStore) MessageService {
	serviceLog := log.With("service", "MessageService")
	return &messageService{
		db:              db,
		log:             serviceLog,
		chatRepo:        chatRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		store:           store,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (ms *messageService) Send(ctx context.Context, chatID, content string) (*chat.Message, error) {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	c, err := ms.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := ms.requireMember(ctx, chatID, uid); err != nil {
		return nil, err
	}

	// The stored completed state is authoritative: a creator exit or delete
	// ends the chat before end_time elapses.
	if c.Status == chat.StatusCompleted {
		return nil, apierr.ChatNotActive("chat has ended and no longer accepts messages")
	}

	// Otherwise the write gate runs on the recomputed status, not the column.
	now := ms.now()
	switch chat.DeriveStatus(c.StartTime, c.EndTime, now) {
	case chat.StatusScheduled:
		return nil, apierr.ChatNotActive("chat is scheduled and not yet active")
	case chat.StatusCompleted:
		ms.persistCompleted(ctx, c)
		return nil, apierr.ChatNotActive("chat has ended and no longer accepts messages")
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, apierr.Validation("message content is required")
	}
	if utf8.RuneCountInString(content) > chat.MaxMessageLength {
		return nil, apierr.Validation("message content must be at most %d characters", chat.MaxMessageLength)
	}

	sender, err := ms.userRepo.GetByID(ctx, nil, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("sender profile not found")
		}
		ms.log.Error("Sender lookup failed", "error", err, "uid", uid)
		return nil, apierr.Upstream("failed to send message: %v", err)
	}

	msg := &chat.Message{
		ChatID:         chatID,
		SenderID:       uid,
		SenderUsername: sender.Username,
		Content:        content,
		Timestamp:      now,
	}
	stored, err := ms.store.Append(ctx, msg)
	if err != nil {
		ms.log.Error("Message append failed", "error", err, "chat_id", chatID)
		return nil, apierr.Upstream("failed to send message: %v", err)
	}
	return stored, nil
}

func (ms *messageService) List(ctx context.Context, chatID string) ([]*chat.Message, error) {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	if _, err := ms.loadChat(ctx, chatID); err != nil {
		return nil, err
	}
	if err := ms.requireMember(ctx, chatID, uid); err != nil {
		return nil, err
	}
	msgs, err := ms.store.ListChronological(ctx, chatID)
	if err != nil {
		ms.log.Error("Message listing failed", "error", err, "chat_id", chatID)
		return nil, apierr.Upstream("failed to list messages: %v", err)
	}
	return msgs, nil
}

// persistCompleted writes back the lazily observed end-of-life transition.
// The rejection stands either way; a failed write-back is only logged.
func (ms *messageService) persistCompleted(ctx context.Context, c *chat.Chat) {
	if c.Status == chat.StatusCompleted {
		return
	}
	if err := ms.chatRepo.UpdateStatus(ctx, nil, c.ID, chat.StatusCompleted); err != nil {
		ms.log.Warn("Failed to persist completed status", "error", err, "chat_id", c.ID)
	}
}

func (ms *messageService) loadChat(ctx context.Context, chatID string) (*chat.Chat, error) {
	c, err := ms.chatRepo.GetByID(ctx, nil, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("chat not found")
		}
		ms.log.Error("Chat lookup failed", "error", err, "chat_id", chatID)
		return nil, apierr.Upstream("chat lookup failed: %v", err)
	}
	return c, nil
}

func (ms *messageService) requireMember(ctx context.Context, chatID, uid string) error {
	if _, err := ms.participantRepo.Get(ctx, nil, chatID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.Forbidden("you are not a participant of this chat")
		}
		ms.log.Error("Membership check failed", "error", err, "chat_id", chatID, "uid", uid)
		return apierr.Upstream("membership check failed: %v", err)
	}
	return nil
}
