package api

import (
	"errors"

	"github.com/heartlink/internal/http/handlers/shared"
	"github.com/heartlink/internal/http/response"
	"github.com/heartlink/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMyProfile 获取本人资料
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	h.respondProfile(c, userID)
}

// GetProfile 获取指定用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	if _, ok := shared.CurrentUserID(c); !ok {
		return
	}
	targetID, ok := shared.ParseUintParam(c, "userId")
	if !ok {
		return
	}
	h.respondProfile(c, targetID)
}

func (h *Handler) respondProfile(c *gin.Context, userID uint) {
	profile, err := h.ProfileService.GetProfile(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Profile not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to load profile", err)
		}
		return
	}
	response.Success(c, profile)
}

// UpdateProfileRequest 资料更新请求
type UpdateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	Age         int      `json:"age"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location"`
	Interests   []string `json:"interests"`
}

// UpdateProfile 更新本人资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	profile, err := h.ProfileService.UpdateProfile(userID, service.ProfileUpdateInput{
		DisplayName: req.DisplayName,
		Age:         req.Age,
		Bio:         req.Bio,
		Location:    req.Location,
		Interests:   req.Interests,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Profile not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update profile", err)
		}
		return
	}
	response.Success(c, profile)
}

// AddPhotoRequest 添加照片请求。position 可选，缺省排到末尾
type AddPhotoRequest struct {
	URL      string `json:"url" binding:"required"`
	Position int    `json:"position"`
}

// AddPhoto 追加资料照片
func (h *Handler) AddPhoto(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	photo, err := h.ProfileService.AddPhoto(userID, req.URL, req.Position)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Profile not found", nil)
		case errors.Is(err, service.ErrPhotoPositionTaken):
			respondError(c, response.CodeConflict, "Photo position already in use", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to add photo", err)
		}
		return
	}
	response.Created(c, photo)
}

// DeletePhoto 删除本人的资料照片
func (h *Handler) DeletePhoto(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	photoID, ok := shared.ParseUintParam(c, "photoId")
	if !ok {
		return
	}

	if err := h.ProfileService.DeletePhoto(userID, photoID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Photo not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to delete photo", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
