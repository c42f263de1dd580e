package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
)

func newChatService(t *testing.T, env *testEnv, now time.Time) *chatService {
	t.Helper()
	svc := NewChatService(env.db, newTestLogger(t), env.chatRepo, env.participantRepo, env.userRepo).(*chatService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateChatWithInvites(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)

	env.seedUser(t, "uid-creator", "creator")
	env.seedUser(t, "uid-friend", "friend")
	env.seedUser(t, "uid-mailed", "mailed")

	view, err := svc.Create(authedCtx("uid-creator"), CreateChatInput{
		Name:          "standup",
		Description:   "daily sync",
		EndTime:       "2026-01-10T13:00:00Z",
		InvitedUIDs:   []string{"uid-friend", "uid-creator", "uid-unknown"},
		InvitedEmails: []string{"Mailed@Example.com", "ghost@example.com"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Status != chat.StatusActive {
		t.Fatalf("status: want=%q got=%q", chat.StatusActive, view.Status)
	}
	if view.CreatorUsername != "creator" {
		t.Fatalf("creator_username: want=%q got=%q", "creator", view.CreatorUsername)
	}
	// creator + friend + mailed; unknown uid and unregistered email skipped.
	if view.ParticipantsCount != 3 {
		t.Fatalf("participants_count: want=3 got=%d", view.ParticipantsCount)
	}
}

func TestCreateChatFutureStartIsScheduled(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")

	start := "2026-01-10T13:00:00Z"
	view, err := svc.Create(authedCtx("uid-creator"), CreateChatInput{
		Name:      "later",
		StartTime: &start,
		EndTime:   "2026-01-10T14:00:00Z",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Status != chat.StatusScheduled {
		t.Fatalf("status: want=%q got=%q", chat.StatusScheduled, view.Status)
	}
}

func TestCreateChatRejectsBadSchedule(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")

	_, err := svc.Create(authedCtx("uid-creator"), CreateChatInput{
		Name:    "bad",
		EndTime: "2026-01-10T11:00:00Z",
	})
	if aerr := apierr.From(err); aerr.Code != apierr.CodeValidation {
		t.Fatalf("code: want=%q got=%q", apierr.CodeValidation, aerr.Code)
	}
}

func TestAddParticipant(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")
	env.seedUser(t, "uid-member", "member")
	env.seedUser(t, "uid-new", "newcomer")
	c := env.seedChat(t, now, "uid-creator", nil, now.Add(time.Hour), "uid-member")

	if err := svc.AddParticipant(authedCtx("uid-creator"), c.ID, "newcomer"); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Adding the same user again conflicts.
	err := svc.AddParticipant(authedCtx("uid-creator"), c.ID, "newcomer")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeConflict {
		t.Fatalf("duplicate add code: want=%q got=%q", apierr.CodeConflict, aerr.Code)
	}

	// Non-creators cannot add.
	err = svc.AddParticipant(authedCtx("uid-member"), c.ID, "creator")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeForbidden {
		t.Fatalf("non-creator add code: want=%q got=%q", apierr.CodeForbidden, aerr.Code)
	}

	// Unknown username is a 404.
	err = svc.AddParticipant(authedCtx("uid-creator"), c.ID, "nobody")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeNotFound {
		t.Fatalf("unknown username code: want=%q got=%q", apierr.CodeNotFound, aerr.Code)
	}
}

func TestRemoveParticipant(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")
	env.seedUser(t, "uid-member", "member")
	c := env.seedChat(t, now, "uid-creator", nil, now.Add(time.Hour), "uid-member")

	// The creator cannot remove themselves.
	err := svc.RemoveParticipant(authedCtx("uid-creator"), c.ID, "uid-creator")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeInvalidOperation {
		t.Fatalf("self-removal code: want=%q got=%q", apierr.CodeInvalidOperation, aerr.Code)
	}

	if err := svc.RemoveParticipant(authedCtx("uid-creator"), c.ID, "uid-member"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err = svc.RemoveParticipant(authedCtx("uid-creator"), c.ID, "uid-member")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeNotFound {
		t.Fatalf("remove absent code: want=%q got=%q", apierr.CodeNotFound, aerr.Code)
	}
}

func TestCreatorExitCompletesChat(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")
	env.seedUser(t, "uid-member", "member")
	c := env.seedChat(t, now, "uid-creator", nil, now.Add(time.Hour), "uid-member")

	if err := svc.Exit(authedCtx("uid-creator"), c.ID); err != nil {
		t.Fatalf("exit: %v", err)
	}

	stored, err := env.chatRepo.GetByID(context.Background(), nil, c.ID)
	if err != nil {
		t.Fatalf("reload chat: %v", err)
	}
	if stored.Status != chat.StatusCompleted {
		t.Fatalf("status after creator exit: want=%q got=%q", chat.StatusCompleted, stored.Status)
	}

	// The remaining member still reads the chat, now completed.
	view, err := svc.Get(authedCtx("uid-member"), c.ID)
	if err != nil {
		t.Fatalf("get after exit: %v", err)
	}
	if view.Status != chat.StatusCompleted {
		t.Fatalf("view status: want=%q got=%q", chat.StatusCompleted, view.Status)
	}
}

func TestNonCreatorExitKeepsChatAlive(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")
	env.seedUser(t, "uid-member", "member")
	c := env.seedChat(t, now, "uid-creator", nil, now.Add(time.Hour), "uid-member")

	if err := svc.Exit(authedCtx("uid-member"), c.ID); err != nil {
		t.Fatalf("exit: %v", err)
	}
	view, err := svc.Get(authedCtx("uid-creator"), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Status != chat.StatusActive {
		t.Fatalf("status: want=%q got=%q", chat.StatusActive, view.Status)
	}
	if view.ParticipantsCount != 1 {
		t.Fatalf("participants_count: want=1 got=%d", view.ParticipantsCount)
	}
}

func TestDeleteChat(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")
	env.seedUser(t, "uid-member", "member")
	c := env.seedChat(t, now, "uid-creator", nil, now.Add(time.Hour), "uid-member")

	err := svc.Delete(authedCtx("uid-member"), c.ID)
	if aerr := apierr.From(err); aerr.Code != apierr.CodeForbidden {
		t.Fatalf("non-creator delete code: want=%q got=%q", apierr.CodeForbidden, aerr.Code)
	}

	if err := svc.Delete(authedCtx("uid-creator"), c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	count, err := env.participantRepo.CountByChat(context.Background(), nil, c.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("participants after delete: want=0 got=%d", count)
	}
	stored, err := env.chatRepo.GetByID(context.Background(), nil, c.ID)
	if err != nil {
		t.Fatalf("chat row should survive delete: %v", err)
	}
	if stored.Status != chat.StatusCompleted {
		t.Fatalf("status: want=%q got=%q", chat.StatusCompleted, stored.Status)
	}
}

func TestParticipantsOrderedByJoinTime(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")
	env.seedUser(t, "uid-b", "brooke")
	env.seedUser(t, "uid-a", "avery")
	c := env.seedChat(t, now, "uid-creator", nil, now.Add(time.Hour), "uid-b", "uid-a")

	usernames, err := svc.Participants(authedCtx("uid-creator"), c.ID)
	if err != nil {
		t.Fatalf("participants: %v", err)
	}
	want := []string{"creator", "brooke", "avery"}
	if len(usernames) != len(want) {
		t.Fatalf("len: want=%d got=%d", len(want), len(usernames))
	}
	for i := range want {
		if usernames[i] != want[i] {
			t.Fatalf("order[%d]: want=%q got=%q", i, want[i], usernames[i])
		}
	}

	// Outsiders get forbidden, not a roster.
	env.seedUser(t, "uid-out", "outsider")
	_, err = svc.Participants(authedCtx("uid-out"), c.ID)
	if aerr := apierr.From(err); aerr.Code != apierr.CodeForbidden {
		t.Fatalf("outsider code: want=%q got=%q", apierr.CodeForbidden, aerr.Code)
	}
}

func TestListMineDerivesLiveStatus(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")

	// Stored status says active, but the window has already closed.
	past := env.seedChat(t, now, "uid-creator", nil, now.Add(-time.Minute))
	if err := env.chatRepo.UpdateStatus(context.Background(), nil, past.ID, chat.StatusActive); err != nil {
		t.Fatalf("force stale status: %v", err)
	}
	views, err := svc.ListMine(authedCtx("uid-creator"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("len: want=1 got=%d", len(views))
	}
	if views[0].ID != past.ID || views[0].Status != chat.StatusCompleted {
		t.Fatalf("derived status: want=%q got=%q", chat.StatusCompleted, views[0].Status)
	}
}

func TestGetUnknownChatIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newChatService(t, env, now)
	env.seedUser(t, "uid-creator", "creator")

	_, err := svc.Get(authedCtx("uid-creator"), "missing-chat")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeNotFound {
		t.Fatalf("code: want=%q got=%q", apierr.CodeNotFound, aerr.Code)
	}
}
