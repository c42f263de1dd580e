package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/huddle-backend/internal/http/response"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/pkg/requestdata"
	"github.com/yungbote/huddle-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/signup
// body: { "uid": "...", "email": "...", "username": "...", "password": "..." }
func (ah *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		UID      string `json:"uid"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	res, err := ah.authService.Signup(c.Request.Context(), services.SignupInput{
		UID:      req.UID,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// POST /auth/login
// Sign-in happens client-side against the identity provider; the backend
// only ever sees ID tokens.
func (ah *AuthHandler) Login(c *gin.Context) {
	response.FromError(c, apierr.NotImplemented("login is handled client-side by the identity provider"))
}

// GET /auth/protected-route
func (ah *AuthHandler) ProtectedRoute(c *gin.Context) {
	response.RespondOK(c, gin.H{"uid": requestdata.UID(c.Request.Context())})
}
