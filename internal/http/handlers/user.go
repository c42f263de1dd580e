package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/huddle-backend/internal/http/response"
	"github.com/yungbote/huddle-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users/search?query=
func (uh *UserHandler) Search(c *gin.Context) {
	users, err := uh.userService.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"users": users})
}

// GET /users/:uid
func (uh *UserHandler) Get(c *gin.Context) {
	u, err := uh.userService.GetByUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, u)
}
