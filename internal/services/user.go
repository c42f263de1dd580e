package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/repos"
)

// UserView is the directory representation exposed on lookup/search.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserService interface {
	Search(ctx context.Context, query string) ([]*UserView, error)
	GetByUID(ctx context.Context, uid string) (*UserView, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

const userSearchLimit = 10

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) Search(ctx context.Context, query string) ([]*UserView, error) {
	callerUID := requestdata.UID(ctx)
	if callerUID == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	if strings.TrimSpace(query) == "" {
		return nil, apierr.Validation("query is required")
	}
	users, err := us.userRepo.Search(ctx, nil, query, userSearchLimit)
	if err != nil {
		us.log.Error("User search failed", "error", err)
		return nil, apierr.Upstream("user search failed: %v", err)
	}
	views := make([]*UserView, 0, len(users))
	for _, u := range users {
		if u.ID == callerUID {
			continue
		}
		views = append(views, &UserView{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	return views, nil
}

func (us *userService) GetByUID(ctx context.Context, uid string) (*UserView, error) {
	if requestdata.UID(ctx) == "" {
		return nil, apierr.Unauthorized("no verified caller in request context")
	}
	u, err := us.userRepo.GetByID(ctx, nil, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user not found")
		}
		us.log.Error("User lookup failed", "error", err, "uid", uid)
		return nil, apierr.Upstream("user lookup failed: %v", err)
	}
	return &UserView{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}
