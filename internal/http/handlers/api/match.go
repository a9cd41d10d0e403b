package api

import (
	"errors"

	"github.com/heartlink/internal/http/handlers/shared"
	"github.com/heartlink/internal/http/response"
	"github.com/heartlink/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMatches 获取配对列表
func (h *Handler) ListMatches(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	matches, err := h.MatchService.ListMatches(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load matches", err)
		return
	}
	response.Success(c, gin.H{"matches": matches})
}

// Unmatch 解除配对
func (h *Handler) Unmatch(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	matchID, ok := shared.ParseUintParam(c, "matchId")
	if !ok {
		return
	}

	if err := h.MatchService.Unmatch(matchID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Match not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to unmatch", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
