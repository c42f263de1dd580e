package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/huddle-backend/internal/http/response"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// POST /chats
// body: { "name", "description", "start_time", "end_time", "invited_uids", "invited_emails" }
func (ch *ChatHandler) Create(c *gin.Context) {
	var req struct {
		Name          string   `json:"name"`
		Description   string   `json:"description"`
		StartTime     *string  `json:"start_time"`
		EndTime       string   `json:"end_time"`
		InvitedUIDs   []string `json:"invited_uids"`
		InvitedEmails []string `json:"invited_emails"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	view, err := ch.chatService.Create(c.Request.Context(), services.CreateChatInput{
		Name:          req.Name,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		InvitedUIDs:   req.InvitedUIDs,
		InvitedEmails: req.InvitedEmails,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, view)
}

// GET /chats/my
func (ch *ChatHandler) ListMine(c *gin.Context) {
	views, err := ch.chatService.ListMine(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"chats": views})
}

// GET /chats/:id
func (ch *ChatHandler) Get(c *gin.Context) {
	view, err := ch.chatService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /chats/:id/participants
func (ch *ChatHandler) Participants(c *gin.Context) {
	usernames, err := ch.chatService.Participants(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"participants": usernames})
}

// POST /chats/:id/participants
// body: { "username": "..." }
func (ch *ChatHandler) AddParticipant(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	if err := ch.chatService.AddParticipant(c.Request.Context(), c.Param("id"), req.Username); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "participant added"})
}

// DELETE /chats/:id/participants/:user_uid
func (ch *ChatHandler) RemoveParticipant(c *gin.Context) {
	if err := ch.chatService.RemoveParticipant(c.Request.Context(), c.Param("id"), c.Param("user_uid")); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "participant removed"})
}

// DELETE /chats/:id/exit
func (ch *ChatHandler) Exit(c *gin.Context) {
	if err := ch.chatService.Exit(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "exited chat"})
}

// DELETE /chats/:id/delete
func (ch *ChatHandler) Delete(c *gin.Context) {
	if err := ch.chatService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "chat deleted"})
}
