package api

import (
	"errors"

	"github.com/heartlink/internal/http/handlers/shared"
	"github.com/heartlink/internal/http/response"
	"github.com/heartlink/internal/service"

	"github.com/gin-gonic/gin"
)

// Feed 获取发现页候选列表
func (h *Handler) Feed(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	candidates, err := h.DiscoveryService.Feed(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load feed", err)
		return
	}
	response.Success(c, gin.H{"candidates": candidates})
}

// SwipeRequest 滑动请求
type SwipeRequest struct {
	TargetUserID uint   `json:"target_user_id" binding:"required"`
	Direction    string `json:"direction" binding:"required"`
}

// Swipe 记录滑动决定
func (h *Handler) Swipe(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.DiscoveryService.Swipe(userID, req.TargetUserID, req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSwipeDirection):
			respondError(c, response.CodeBadRequest, "Direction must be left or right", nil)
		case errors.Is(err, service.ErrSelfSwipe):
			respondError(c, response.CodeBadRequest, "Cannot swipe on yourself", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		default:
			respondError(c, response.CodeInternal, "Swipe failed", err)
		}
		return
	}
	response.Success(c, result)
}
