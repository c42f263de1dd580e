package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/user"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/platform/firebase"
	"github.com/yungbote/huddle-backend/internal/repos"
)

type SignupInput struct {
	UID      string
	Email    string
	Username string
	Password string
}

type SignupResult struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	identity firebase.AuthClient
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, identity firebase.AuthClient) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		identity: identity,
	}
}

func (as *authService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.Validation("a valid email is required")
	}
	if username == "" {
		return nil, apierr.Validation("username is required")
	}

	uid := strings.TrimSpace(input.UID)
	if uid == "" {
		// No pre-provisioned identity: create the provider account first.
		if strings.TrimSpace(input.Password) == "" {
			return nil, apierr.Validation("password is required when no uid is supplied")
		}
		if len(input.Password) < 6 {
			return nil, apierr.Validation("password should be at least 6 characters")
		}
		createdUID, err := as.identity.CreateUser(ctx, email, input.Password, username)
		if err != nil {
			if firebase.IsEmailAlreadyExists(err) {
				return nil, apierr.Conflict("email already registered with the identity provider")
			}
			as.log.Error("Identity provider signup failed", "error", err)
			return nil, apierr.Upstream("identity provider signup failed: %v", err)
		}
		uid = createdUID
	}

	u := &user.User{ID: uid, Email: email, Username: username}
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, createErr := as.userRepo.Create(ctx, tx, u)
		return createErr
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("a user with this email or username already exists")
		}
		as.log.Error("Failed to store user", "error", err, "uid", uid)
		return nil, apierr.Upstream("failed to store user: %v", err)
	}

	as.log.Info("User registered", "uid", uid, "username", username)
	return &SignupResult{UID: uid, Username: username}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if strings.TrimSpace(tokenString) == "" {
		return ctx, apierr.Unauthorized("missing or invalid token")
	}
	uid, err := as.identity.VerifyIDToken(ctx, tokenString)
	if err != nil {
		as.log.Debug("Token verification failed", "error", err)
		return ctx, apierr.Unauthorized("invalid or expired authentication token")
	}
	rd := &requestdata.RequestData{
		UID:         uid,
		TokenString: tokenString,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
