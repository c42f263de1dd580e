package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/repos"
)

const maxChatNameLength = 100

// ChatView is the API representation of a chat. Status is always derived
// from the schedule at read time, never read from the stored column.
type ChatView struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	CreatorID         string     `json:"creator_id"`
	CreatorUsername   string     `json:"creator_username"`
	Status            string     `json:"status"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           time.Time  `json:"end_time"`
	ParticipantsCount int        `json:"participants_count"`
	CreatedAt         time.Time  `json:"created_at"`
}

type CreateChatInput struct {
	Name          string
	Description   string
	StartTime     *string
	EndTime       string
	InvitedUIDs   []string
	InvitedEmails []string
}

type ChatService interface {
	Create(ctx context.Context, input CreateChatInput) (*ChatView, error)
	ListMine(ctx context.Context) ([]*ChatView, error)
	Get(ctx context.Context, chatID string) (*ChatView, error)
	Participants(ctx context.Context, chatID string) ([]string, error)
	AddParticipant(ctx context.Context, chatID, username string) error
	RemoveParticipant(ctx context.Context, chatID, targetUID string) error
	Exit(ctx context.Context, chatID string) error
	Delete(ctx context.Context, chatID string) error
}

type chatService struct {
	db              *gorm.DB
	log             *logger.Logger
	chatRepo        repos.ChatRepo
	participantRepo repos.ChatParticipantRepo
	userRepo        repos.UserRepo
	now             func() time.Time
}

func NewChatService(db *gorm.DB, log *logger.Logger, chatRepo repos.ChatRepo, participantRepo repos.ChatParticipantRepo, userRepo repos.UserRepo) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{
		db:              db,
		log:             serviceLog,
		chatRepo:        chatRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (cs *chatService) Create(ctx context.Context, input CreateChatInput) (*ChatView, error) {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierr.Validation("chat name is required")
	}
	if len(name) > maxChatNameLength {
		return nil, apierr.Validation("chat name must be at most %d characters", maxChatNameLength)
	}

	now := cs.now()
	startTime, endTime, aerr := chat.ValidateSchedule(input.StartTime, input.EndTime, now)
	if aerr != nil {
		return nil, aerr
	}

	c := &chat.Chat{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatorID:   uid,
		Status:      chat.DeriveStatus(startTime, endTime, now),
		StartTime:   startTime,
		EndTime:     endTime,
	}

	memberUIDs := map[string]bool{uid: true}
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, createErr := cs.chatRepo.Create(ctx, tx, c); createErr != nil {
			return createErr
		}
		for _, invitedUID := range input.InvitedUIDs {
			invitedUID = strings.TrimSpace(invitedUID)
			if invitedUID == "" || memberUIDs[invitedUID] {
				continue
			}
			if _, lookupErr := cs.userRepo.GetByID(ctx, tx, invitedUID); lookupErr != nil {
				if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
					cs.log.Debug("Skipping unknown invited uid", "chat_id", c.ID, "uid", invitedUID)
					continue
				}
				return lookupErr
			}
			memberUIDs[invitedUID] = true
		}
		for _, email := range input.InvitedEmails {
			email = strings.TrimSpace(strings.ToLower(email))
			if email == "" {
				continue
			}
			invited, lookupErr := cs.userRepo.GetByEmail(ctx, tx, email)
			if lookupErr != nil {
				if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
					cs.log.Info("Invited email has no account, skipping", "chat_id", c.ID, "email", email)
					continue
				}
				return lookupErr
			}
			memberUIDs[invited.ID] = true
		}

		participants := make([]*chat.Participant, 0, len(memberUIDs))
		for memberUID := range memberUIDs {
			participants = append(participants, &chat.Participant{
				ID:       uuid.NewString(),
				ChatID:   c.ID,
				UserID:   memberUID,
				JoinedAt: now,
			})
		}
		_, createErr := cs.participantRepo.Create(ctx, tx, participants)
		return createErr
	})
	if err != nil {
		cs.log.Error("Chat creation failed", "error", err, "creator_id", uid)
		return nil, apierr.Upstream("failed to create chat: %v", err)
	}

	cs.log.Info("Chat created", "chat_id", c.ID, "creator_id", uid, "participants", len(memberUIDs))
	return cs.buildView(ctx, c, now)
}

func (cs *chatService) ListMine(ctx context.Context) ([]*ChatView, error) {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	memberships, err := cs.participantRepo.ListByUser(ctx, nil, uid)
	if err != nil {
		cs.log.Error("Failed to list memberships", "error", err, "uid", uid)
		return nil, apierr.Upstream("failed to list chats: %v", err)
	}
	if len(memberships) == 0 {
		return []*ChatView{}, nil
	}
	chatIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		chatIDs = append(chatIDs, m.ChatID)
	}
	chats, err := cs.chatRepo.GetByIDs(ctx, nil, chatIDs)
	if err != nil {
		cs.log.Error("Failed to load chats", "error", err, "uid", uid)
		return nil, apierr.Upstream("failed to list chats: %v", err)
	}

	now := cs.now()
	views := make([]*ChatView, 0, len(chats))
	for _, c := range chats {
		view, viewErr := cs.buildView(ctx, c, now)
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}
	return views, nil
}

func (cs *chatService) Get(ctx context.Context, chatID string) (*ChatView, error) {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	c, err := cs.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := cs.requireMember(ctx, chatID, uid); err != nil {
		return nil, err
	}
	return cs.buildView(ctx, c, cs.now())
}

func (cs *chatService) Participants(ctx context.Context, chatID string) ([]string, error) {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	if _, err := cs.loadChat(ctx, chatID); err != nil {
		return nil, err
	}
	if err := cs.requireMember(ctx, chatID, uid); err != nil {
		return nil, err
	}
	members, err := cs.participantRepo.ListByChat(ctx, nil, chatID)
	if err != nil {
		cs.log.Error("Failed to list participants", "error", err, "chat_id", chatID)
		return nil, apierr.Upstream("failed to list participants: %v", err)
	}
	memberUIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberUIDs = append(memberUIDs, m.UserID)
	}
	users, err := cs.userRepo.GetByIDs(ctx, nil, memberUIDs)
	if err != nil {
		cs.log.Error("Failed to resolve participant usernames", "error", err, "chat_id", chatID)
		return nil, apierr.Upstream("failed to list participants: %v", err)
	}
	usernameByUID := make(map[string]string, len(users))
	for _, u := range users {
		usernameByUID[u.ID] = u.Username
	}
	// Preserve join order from the membership listing.
	usernames := make([]string, 0, len(members))
	for _, m := range members {
		if name, ok := usernameByUID[m.UserID]; ok {
			usernames = append(usernames, name)
		}
	}
	return usernames, nil
}

func (cs *chatService) AddParticipant(ctx context.Context, chatID, username string) error {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return apierr.Unauthorized("no verified caller in request context")
	}
	c, err := cs.loadChat(ctx, chatID)
	if err != nil {
		return err
	}
	if c.CreatorID != uid {
		return apierr.Forbidden("only the chat creator can add participants")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return apierr.Validation("username is required")
	}
	target, lookupErr := cs.userRepo.GetByUsername(ctx, nil, username)
	if lookupErr != nil {
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return apierr.NotFound("user with username %q not found", username)
		}
		cs.log.Error("Participant lookup failed", "error", lookupErr, "chat_id", chatID)
		return apierr.Upstream("failed to add participant: %v", lookupErr)
	}
	_, createErr := cs.participantRepo.Create(ctx, nil, []*chat.Participant{{
		ID:       uuid.NewString(),
		ChatID:   chatID,
		UserID:   target.ID,
		JoinedAt: cs.now(),
	}})
	if createErr != nil {
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return apierr.Conflict("user is already a participant of this chat")
		}
		cs.log.Error("Failed to add participant", "error", createErr, "chat_id", chatID)
		return apierr.Upstream("failed to add participant: %v", createErr)
	}
	cs.log.Info("Participant added", "chat_id", chatID, "user_id", target.ID)
	return nil
}

func (cs *chatService) RemoveParticipant(ctx context.Context, chatID, targetUID string) error {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return apierr.Unauthorized("no verified caller in request context")
	}
	c, err := cs.loadChat(ctx, chatID)
	if err != nil {
		return err
	}
	if c.CreatorID != uid {
		return apierr.Forbidden("only the chat creator can remove participants")
	}
	if targetUID == uid {
		return apierr.InvalidOperation("the creator cannot remove themselves; exit the chat instead")
	}
	if _, getErr := cs.participantRepo.Get(ctx, nil, chatID, targetUID); getErr != nil {
		if errors.Is(getErr, gorm.ErrRecordNotFound) {
			return apierr.NotFound("user is not a participant of this chat")
		}
		cs.log.Error("Participant lookup failed", "error", getErr, "chat_id", chatID)
		return apierr.Upstream("failed to remove participant: %v", getErr)
	}
	if delErr := cs.participantRepo.Delete(ctx, nil, chatID, targetUID); delErr != nil {
		cs.log.Error("Failed to remove participant", "error", delErr, "chat_id", chatID)
		return apierr.Upstream("failed to remove participant: %v", delErr)
	}
	cs.log.Info("Participant removed", "chat_id", chatID, "user_id", targetUID)
	return nil
}

func (cs *chatService) Exit(ctx context.Context, chatID string) error {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return apierr.Unauthorized("no verified caller in request context")
	}
	c, err := cs.loadChat(ctx, chatID)
	if err != nil {
		return err
	}
	if _, getErr := cs.participantRepo.Get(ctx, nil, chatID, uid); getErr != nil {
		if errors.Is(getErr, gorm.ErrRecordNotFound) {
			return apierr.NotFound("you are not a participant of this chat")
		}
		cs.log.Error("Participant lookup failed", "error", getErr, "chat_id", chatID)
		return apierr.Upstream("failed to exit chat: %v", getErr)
	}
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if delErr := cs.participantRepo.Delete(ctx, tx, chatID, uid); delErr != nil {
			return delErr
		}
		// A chat cannot outlive its creator's membership.
		if c.CreatorID == uid {
			return cs.chatRepo.UpdateStatus(ctx, tx, chatID, chat.StatusCompleted)
		}
		return nil
	})
	if err != nil {
		cs.log.Error("Failed to exit chat", "error", err, "chat_id", chatID, "uid", uid)
		return apierr.Upstream("failed to exit chat: %v", err)
	}
	cs.log.Info("Participant exited", "chat_id", chatID, "uid", uid, "was_creator", c.CreatorID == uid)
	return nil
}

func (cs *chatService) Delete(ctx context.Context, chatID string) error {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return apierr.Unauthorized("no verified caller in request context")
	}
	c, err := cs.loadChat(ctx, chatID)
	if err != nil {
		return err
	}
	if c.CreatorID != uid {
		return apierr.Forbidden("only the chat creator can delete the chat")
	}
	// The chat row is retained as a tombstone; membership is purged and the
	// cached status flipped to completed.
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if purgeErr := cs.participantRepo.DeleteAllForChat(ctx, tx, chatID); purgeErr != nil {
			return purgeErr
		}
		return cs.chatRepo.UpdateStatus(ctx, tx, chatID, chat.StatusCompleted)
	})
	if err != nil {
		cs.log.Error("Failed to delete chat", "error", err, "chat_id", chatID)
		return apierr.Upstream("failed to delete chat: %v", err)
	}
	cs.log.Info("Chat deleted", "chat_id", chatID, "creator_id", uid)
	return nil
}

func (cs *chatService) loadChat(ctx context.Context, chatID string) (*chat.Chat, error) {
	c, err := cs.chatRepo.GetByID(ctx, nil, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("chat not found")
		}
		cs.log.Error("Chat lookup failed", "error", err, "chat_id", chatID)
		return nil, apierr.Upstream("chat lookup failed: %v", err)
	}
	return c, nil
}

func (cs *chatService) requireMember(ctx context.Context, chatID, uid string) error {
	if _, err := cs.participantRepo.Get(ctx, nil, chatID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.Forbidden("you are not a participant of this chat")
		}
		cs.log.Error("Membership check failed", "error", err, "chat_id", chatID, "uid", uid)
		return apierr.Upstream("membership check failed: %v", err)
	}
	return nil
}

func (cs *chatService) buildView(ctx context.Context, c *chat.Chat, now time.Time) (*ChatView, error) {
	count, err := cs.participantRepo.CountByChat(ctx, nil, c.ID)
	if err != nil {
		cs.log.Error("Participant count failed", "error", err, "chat_id", c.ID)
		return nil, apierr.Upstream("failed to load chat: %v", err)
	}
	creatorUsername := ""
	creator, err := cs.userRepo.GetByID(ctx, nil, c.CreatorID)
	if err == nil {
		creatorUsername = creator.Username
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		cs.log.Error("Creator lookup failed", "error", err, "chat_id", c.ID)
		return nil, apierr.Upstream("failed to load chat: %v", err)
	}
	status := c.Status
	if status != chat.StatusCompleted {
		status = chat.DeriveStatus(c.StartTime, c.EndTime, now)
	}
	return &ChatView{
		ID:                c.ID,
		Name:              c.Name,
		Description:       c.Description,
		CreatorID:         c.CreatorID,
		CreatorUsername:   creatorUsername,
		Status:            status,
		StartTime:         c.StartTime,
		EndTime:           c.EndTime,
		ParticipantsCount: int(count),
		CreatedAt:         c.CreatedAt,
	}, nil
}
