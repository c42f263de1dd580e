package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/huddle-backend/internal/http/handlers"
	httpMW "github.com/yungbote/huddle-backend/internal/http/middleware"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/services"
)

type stubAuthService struct{}

func (s *stubAuthService) Signup(ctx context.Context, input services.SignupInput) (*services.SignupResult, error) {
	if input.Email == "" {
		return nil, apierr.Validation("a valid email is required")
	}
	return &services.SignupResult{UID: "uid-1", Username: input.Username}, nil
}

func (s *stubAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString != "good-token" {
		return ctx, apierr.Unauthorized("invalid or expired authentication token")
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{UID: "uid-1", TokenString: tokenString}), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	authService := &stubAuthService{}
	return NewRouter(RouterConfig{
		Log:            log,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authService),
		HealthHandler:  httpH.NewHealthHandler(),
		AuthHandler:    httpH.NewAuthHandler(authService),
	})
}

func TestHealthcheckIsPublic(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d", http.StatusOK, rec.Code)
	}
}

func TestLoginIsNotImplemented(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status: want=%d got=%d", http.StatusNotImplemented, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_implemented") {
		t.Fatalf("body should carry the code: %s", rec.Body.String())
	}
}

func TestSignupValidationMapsTo400(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusBadRequest, rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "validation_error") {
		t.Fatalf("body should carry the code: %s", rec.Body.String())
	}
}

func TestSignupCreated(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":"a@b.com","username":"alice","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/protected-route", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status: want=%d got=%d", http.StatusUnauthorized, rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/protected-route", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("good token status: want=%d got=%d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "uid-1") {
		t.Fatalf("body should carry the uid: %s", rec.Body.String())
	}
}
