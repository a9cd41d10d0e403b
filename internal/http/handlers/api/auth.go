package api

import (
	"errors"

	"github.com/heartlink/internal/http/handlers/shared"
	"github.com/heartlink/internal/http/response"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.UserAuthService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email format", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "Email already registered", nil)
		case errors.Is(err, service.ErrWeakPassword):
			if perr, ok := err.(interface{ Violations() []string }); ok {
				response.ErrorWithData(c, response.CodeBadRequest, "Password does not meet requirements",
					gin.H{"errors": perr.Violations()})
				return
			}
			respondError(c, response.CodeBadRequest, "Password does not meet requirements", nil)
		default:
			respondError(c, response.CodeInternal, "Registration failed", err)
		}
		return
	}

	shared.RequestLog(c).Infow("user_registered", "user_id", user.ID)
	response.Created(c, gin.H{
		"user":    buildUserView(user),
		"message": "Registration successful. Please check your email to verify your account.",
	})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, pair, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "Invalid email or password", nil)
		case errors.Is(err, service.ErrUserSuspended):
			respondError(c, response.CodeForbidden, "Account suspended", nil)
		case errors.Is(err, service.ErrEmailNotVerified):
			respondError(c, response.CodeForbidden, "Please verify your email before logging in", nil)
		default:
			respondError(c, response.CodeInternal, "Login failed", err)
		}
		return
	}

	shared.RequestLog(c).Infow("user_login", "user_id", user.ID)
	response.Success(c, gin.H{
		"user":          buildUserView(user),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// VerifyEmail 消费邮箱验证令牌
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	_ = c.ShouldBindJSON(&req)
	if req.Token == "" {
		req.Token = c.Query("token")
	}
	if req.Token == "" {
		respondError(c, response.CodeBadRequest, "Verification token is required", nil)
		return
	}

	user, err := h.UserAuthService.VerifyEmail(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVerificationTokenInvalid):
			respondError(c, response.CodeBadRequest, "Invalid or expired verification token", nil)
		default:
			respondError(c, response.CodeInternal, "Email verification failed", err)
		}
		return
	}

	shared.RequestLog(c).Infow("email_verified", "user_id", user.ID)
	response.Success(c, gin.H{
		"user":    buildUserView(user),
		"message": "Email verified successfully.",
	})
}

// ResendVerificationRequest 重发验证邮件请求
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResendVerification 重发验证邮件
func (h *Handler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.UserAuthService.ResendVerification(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrEmailAlreadyVerified):
			respondError(c, response.CodeBadRequest, "Email already verified", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to resend verification email", err)
		}
		return
	}

	response.Success(c, gin.H{"message": "Verification email sent."})
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
	UserID       uint   `json:"user_id" binding:"required"`
}

// RefreshToken 刷新令牌换取新令牌对
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, pair, err := h.UserAuthService.Refresh(req.UserID, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenInvalid):
			respondError(c, response.CodeUnauthorized, "Invalid or expired refresh token", nil)
		default:
			respondError(c, response.CodeInternal, "Token refresh failed", err)
		}
		return
	}

	shared.RequestLog(c).Infow("token_refreshed", "user_id", user.ID)
	response.Success(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// LogoutRequest 登出请求
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout 吊销刷新令牌
func (h *Handler) Logout(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.UserAuthService.Logout(userID, req.RefreshToken); err != nil {
		respondError(c, response.CodeInternal, "Logout failed", err)
		return
	}

	shared.RequestLog(c).Infow("user_logout", "user_id", userID)
	response.Success(c, gin.H{"message": "Logged out."})
}

func buildUserView(user *models.User) gin.H {
	return gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"display_name":     user.DisplayName,
		"email_verified":   user.EmailVerified,
		"profile_complete": user.ProfileComplete,
	}
}
