package services

import (
	"testing"

	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
)

func TestUserSearchExcludesCaller(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.db, newTestLogger(t), env.userRepo)

	env.seedUser(t, "uid-1", "alice")
	env.seedUser(t, "uid-2", "alicia")
	env.seedUser(t, "uid-3", "bob")

	views, err := svc.Search(authedCtx("uid-1"), "ali")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("len: want=1 got=%d", len(views))
	}
	if views[0].Username != "alicia" {
		t.Fatalf("match: want=%q got=%q", "alicia", views[0].Username)
	}
}

func TestUserSearchRequiresQuery(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.db, newTestLogger(t), env.userRepo)
	env.seedUser(t, "uid-1", "alice")

	_, err := svc.Search(authedCtx("uid-1"), "  ")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeValidation {
		t.Fatalf("code: want=%q got=%q", apierr.CodeValidation, aerr.Code)
	}
}

func TestGetByUID(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.db, newTestLogger(t), env.userRepo)
	env.seedUser(t, "uid-1", "alice")

	view, err := svc.GetByUID(authedCtx("uid-1"), "uid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Username != "alice" {
		t.Fatalf("username: want=%q got=%q", "alice", view.Username)
	}

	_, err = svc.GetByUID(authedCtx("uid-1"), "uid-missing")
	if aerr := apierr.From(err); aerr.Code != apierr.CodeNotFound {
		t.Fatalf("code: want=%q got=%q", apierr.CodeNotFound, aerr.Code)
	}
}
