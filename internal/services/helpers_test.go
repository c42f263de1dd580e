package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/domain/user"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/repos"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &chat.Chat{}, &chat.Participant{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type testEnv struct {
	db              *gorm.DB
	userRepo        repos.UserRepo
	chatRepo        repos.ChatRepo
	participantRepo repos.ChatParticipantRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	return &testEnv{
		db:              db,
		userRepo:        repos.NewUserRepo(db, log),
		chatRepo:        repos.NewChatRepo(db, log),
		participantRepo: repos.NewChatParticipantRepo(db, log),
	}
}

func (e *testEnv) seedUser(t *testing.T, uid, username string) *user.User {
	t.Helper()
	u, err := e.userRepo.Create(context.Background(), nil, &user.User{
		ID:       uid,
		Email:    username + "@example.com",
		Username: username,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// seedChat derives the stored status from the caller's frozen clock so the
// seed matches whatever instant the test pins the service to.
func (e *testEnv) seedChat(t *testing.T, now time.Time, creatorID string, start *time.Time, end time.Time, memberUIDs ...string) *chat.Chat {
	t.Helper()
	ctx := context.Background()
	c, err := e.chatRepo.Create(ctx, nil, &chat.Chat{
		ID:        uuid.NewString(),
		Name:      "planning",
		CreatorID: creatorID,
		Status:    chat.DeriveStatus(start, end, now),
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("seed chat: %v", err)
	}
	members := append([]string{creatorID}, memberUIDs...)
	for i, uid := range members {
		_, err := e.participantRepo.Create(ctx, nil, []*chat.Participant{{
			ID:       uuid.NewString(),
			ChatID:   c.ID,
			UserID:   uid,
			JoinedAt: now.Add(time.Duration(i) * time.Second),
		}})
		if err != nil {
			t.Fatalf("seed participant %s: %v", uid, err)
		}
	}
	return c
}

func authedCtx(uid string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UID: uid, TokenString: "test-token"})
}

// fakeMessageStore is an in-memory stand-in for the document store.
type fakeMessageStore struct {
	byChat  map[string][]*chat.Message
	listErr error
	sendErr error
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{byChat: map[string][]*chat.Message{}}
}

func (f *fakeMessageStore) Append(ctx context.Context, msg *chat.Message) (*chat.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	stored := *msg
	stored.ID = fmt.Sprintf("msg-%d", len(f.byChat[msg.ChatID])+1)
	f.byChat[msg.ChatID] = append(f.byChat[msg.ChatID], &stored)
	return &stored, nil
}

func (f *fakeMessageStore) ListChronological(ctx context.Context, chatID string) ([]*chat.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	msgs := append([]*chat.Message{}, f.byChat[chatID]...)
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
	return msgs, nil
}

func (f *fakeMessageStore) ListRecent(ctx context.Context, chatID string, limit int) ([]*chat.Message, error) {
	msgs, err := f.ListChronological(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (f *fakeMessageStore) Close() error { return nil }

// stubModel echoes or fails on demand and records every prompt it receives.
type stubModel struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if s.reply != "" {
		return s.reply, nil
	}
	return prompt, nil
}

func (s *stubModel) Model() string { return "stub-model" }

// fakeIdentity implements firebase.AuthClient for signup/verify tests.
type fakeIdentity struct {
	createdUID string
	createErr  error
	verifyUID  string
	verifyErr  error
}

func (f *fakeIdentity) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.verifyUID, nil
}

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.createdUID, nil
}
