package firebase

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/yungbote/huddle-backend/internal/pkg/envutil"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

// TokenVerifier resolves a bearer credential to a stable provider uid.
// Verification is strict: expired or badly signed tokens fail, no leeway.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// AccountCreator provisions identity-provider accounts during signup.
type AccountCreator interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
}

// AuthClient is the Firebase Auth surface the rest of the backend uses.
type AuthClient interface {
	TokenVerifier
	AccountCreator
}

type authClient struct {
	log    *logger.Logger
	client *fbauth.Client
}

func NewAuthClient(ctx context.Context, log *logger.Logger) (AuthClient, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	credsFile := envutil.String("FIREBASE_CREDENTIALS_FILE", "")

	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}
	return &authClient{
		log:    log.With("service", "FirebaseAuthClient"),
		client: client,
	}, nil
}

func (a *authClient) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	tok, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return tok.UID, nil
}

func (a *authClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		DisplayName(displayName).
		EmailVerified(false).
		Disabled(false)
	if strings.TrimSpace(password) != "" {
		params = params.Password(password)
	}
	rec, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create firebase user: %w", err)
	}
	a.log.Debug("Firebase user created", "uid", rec.UID, "email", email)
	return rec.UID, nil
}

// IsEmailAlreadyExists reports whether err is the provider's duplicate-email
// failure, so signup can surface it as a conflict.
func IsEmailAlreadyExists(err error) bool {
	return fbauth.IsEmailAlreadyExists(err)
}
