package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/huddle-backend/internal/http/response"
	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
	"github.com/yungbote/huddle-backend/internal/services"
)

type MessageHandler struct {
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// POST /chats/:id/messages
// body: { "content": "..." }
func (mh *MessageHandler) Send(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	msg, err := mh.messageService.Send(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, msg)
}

// GET /chats/:id/messages
func (mh *MessageHandler) List(c *gin.Context) {
	msgs, err := mh.messageService.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}
