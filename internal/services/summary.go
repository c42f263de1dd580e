package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/platform/firestore"
	"github.com/yungbote/huddle-backend/internal/platform/gemini"
	"github.com/yungbote/huddle-backend/internal/repos"
)

// DefaultMessageBuffer bounds how many most-recent messages feed one summary.
const DefaultMessageBuffer = 1000

const emptySummarySentinel = "No messages to summarize."

// summaryRunTimeout bounds one collapsed pipeline run end to end.
const summaryRunTimeout = 2 * time.Minute

type SummaryResult struct {
	ChatID       string    `json:"chat_id"`
	Summary      string    `json:"summary"`
	MessageCount int       `json:"message_count"`
	Model        string    `json:"model,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
	Empty        bool      `json:"empty"`
}

type SummaryService interface {
	Summarize(ctx context.Context, chatID string) (*SummaryResult, error)
}

type summaryService struct {
	db              *gorm.DB
	log             *logger.Logger
	chatRepo        repos.ChatRepo
	participantRepo repos.ChatParticipantRepo
	store           firestore.MessageStore
	model           gemini.Client
	graph           *summaryGraph
	messageBuffer   int
	inflight        singleflight.Group
	now             func() time.Time
}

func NewSummaryService(db *gorm.DB, log *logger.Logger, chatRepo repos.ChatRepo, participantRepo repos.ChatParticipantRepo, store firestore.MessageStore, model gemini.Client, messageBuffer int) SummaryService {
	if messageBuffer <= 0 {
		messageBuffer = DefaultMessageBuffer
	}
	serviceLog := log.With("service", "SummaryService")
	return &summaryService{
		db:              db,
		log:             serviceLog,
		chatRepo:        chatRepo,
		participantRepo: participantRepo,
		store:           store,
		model:           model,
		graph:           newSummaryGraph(model),
		messageBuffer:   messageBuffer,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (ss *summaryService) Summarize(ctx context.Context, chatID string) (*SummaryResult, error) {
	uid := requestdata.UID(ctx)
	if uid == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	c, err := ss.chatRepo.GetByID(ctx, nil, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("chat not found")
		}
		ss.log.Error("Chat lookup failed", "error", err, "chat_id", chatID)
		return nil, apierr.Upstream("chat lookup failed: %v", err)
	}
	if _, err := ss.participantRepo.Get(ctx, nil, chatID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Forbidden("you are not a participant of this chat")
		}
		ss.log.Error("Membership check failed", "error", err, "chat_id", chatID, "uid", uid)
		return nil, apierr.Upstream("membership check failed: %v", err)
	}

	// Past this point the result depends only on the chat, so concurrent
	// requests for the same chat collapse into one pipeline run. The run is
	// detached from the triggering request so one caller disconnecting does
	// not fail everyone piggybacked on it.
	v, err, _ := ss.inflight.Do(chatID, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), summaryRunTimeout)
		defer cancel()
		return ss.run(runCtx, c)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SummaryResult), nil
}

func (ss *summaryService) run(ctx context.Context, c *chat.Chat) (*SummaryResult, error) {
	msgs, err := ss.store.ListRecent(ctx, c.ID, ss.messageBuffer)
	if err != nil {
		ss.log.Error("Failed to fetch messages for summary", "error", err, "chat_id", c.ID)
		return nil, apierr.Upstream("failed to fetch messages: %v", err)
	}
	if len(msgs) == 0 {
		return &SummaryResult{
			ChatID:      c.ID,
			Summary:     emptySummarySentinel,
			GeneratedAt: ss.now(),
			Empty:       true,
		}, nil
	}

	state := &summaryState{
		ChatName:        c.Name,
		ChatDescription: c.Description,
		Messages:        msgs,
	}
	if err := ss.graph.Invoke(ctx, state); err != nil {
		ss.log.Error("Summary generation failed", "error", err, "chat_id", c.ID, "messages", len(msgs))
		return nil, apierr.Upstream("failed to generate summary: %v", err)
	}

	ss.log.Info("Summary generated", "chat_id", c.ID, "messages", len(msgs), "model", ss.model.Model())
	return &SummaryResult{
		ChatID:       c.ID,
		Summary:      state.Summary,
		MessageCount: len(msgs),
		Model:        ss.model.Model(),
		GeneratedAt:  ss.now(),
	}, nil
}
