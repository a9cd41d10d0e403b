package api

import (
	"errors"

	"github.com/heartlink/internal/http/handlers/shared"
	"github.com/heartlink/internal/http/response"
	"github.com/heartlink/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMessages 获取配对内消息，时间正序
func (h *Handler) ListMessages(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	matchID, ok := shared.ParseUintParam(c, "matchId")
	if !ok {
		return
	}

	messages, err := h.MessageService.ListMessages(matchID, userID)
	if err != nil {
		h.respondMessageError(c, err)
		return
	}
	response.Success(c, gin.H{"messages": messages})
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage 在配对内发送消息
func (h *Handler) SendMessage(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	matchID, ok := shared.ParseUintParam(c, "matchId")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	message, err := h.MessageService.SendMessage(matchID, userID, req.Content)
	if err != nil {
		h.respondMessageError(c, err)
		return
	}
	response.Created(c, message)
}

func (h *Handler) respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		respondError(c, response.CodeBadRequest, "Message content is required", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "Match not found", nil)
	case errors.Is(err, service.ErrNotMatchParticipant):
		respondError(c, response.CodeForbidden, "You are not a participant of this match", nil)
	default:
		respondError(c, response.CodeInternal, "Message operation failed", err)
	}
}
